package main

import "github.com/strrl/multi-draft/internal/cmd"

func main() {
	cmd.Execute()
}
