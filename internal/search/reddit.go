package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultRedditAuthURL = "https://www.reddit.com"
	defaultRedditAPIURL  = "https://oauth.reddit.com"
	redditUserAgent      = "multi-draft/1.0 (evidence search)"
)

var errMissingRedditCreds = fmt.Errorf("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET are required")

// RedditClient searches Reddit through the OAuth API using the
// client-credentials grant.
type RedditClient struct {
	clientID     string
	clientSecret string
	authURL      string
	apiURL       string
	httpClient   *http.Client

	// Optional search knobs; zero values use Reddit's defaults.
	Subreddit  string
	Sort       string
	TimeFilter string
}

// Comment is one top-level comment on a post.
type Comment struct {
	Author string `json:"author"`
	Score  int64  `json:"score"`
	Body   string `json:"body"`
	URL    string `json:"url,omitempty"`
}

func NewRedditClient(clientID, clientSecret string) (*RedditClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errMissingRedditCreds
	}

	authURL := os.Getenv("REDDIT_AUTH_URL")
	if authURL == "" {
		authURL = defaultRedditAuthURL
	}
	apiURL := os.Getenv("REDDIT_API_URL")
	if apiURL == "" {
		apiURL = defaultRedditAPIURL
	}

	return &RedditClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      authURL,
		apiURL:       apiURL,
		httpClient:   &http.Client{Timeout: 25 * time.Second},
		Sort:         "relevance",
		TimeFilter:   "all",
	}, nil
}

func (c *RedditClient) Name() string { return "reddit" }

func (c *RedditClient) accessToken(ctx context.Context) (string, error) {
	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"/api/v1/access_token", form)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("User-Agent", redditUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		return "", fmt.Errorf("failed to get access token: %s", truncate(string(body), 300))
	}
	return token, nil
}

func (c *RedditClient) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	path := "/search"
	params := url.Values{
		"q":        {query},
		"limit":    {strconv.Itoa(limit)},
		"sort":     {c.Sort},
		"t":        {c.TimeFilter},
		"type":     {"link"},
		"raw_json": {"1"},
	}
	if c.Subreddit != "" {
		path = "/r/" + url.PathEscape(c.Subreddit) + "/search"
		params.Set("restrict_sr", "1")
	}

	body, err := c.get(ctx, token, path+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, child := range gjson.GetBytes(body, "data.children").Array() {
		post := child.Get("data")
		if !post.Exists() {
			continue
		}
		results = append(results, Result{
			Title:   post.Get("title").String(),
			URL:     postURL(post),
			Snippet: truncate(post.Get("selftext").String(), maxSnippetChars),
			Meta: fmt.Sprintf("r/%s · score %d · %d comments · %s",
				post.Get("subreddit").String(),
				post.Get("score").Int(),
				post.Get("num_comments").Int(),
				postDate(post)),
		})
	}
	return results, nil
}

// TopComments fetches the best top-level comments for a post, skipping
// deleted and removed bodies.
func (c *RedditClient) TopComments(ctx context.Context, postID string, limit int) ([]Comment, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"limit":    {strconv.Itoa(limit)},
		"sort":     {"top"},
		"raw_json": {"1"},
	}
	body, err := c.get(ctx, token, "/comments/"+url.PathEscape(postID)+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	// The comments endpoint returns [postListing, commentListing].
	var comments []Comment
	for _, child := range gjson.GetBytes(body, "1.data.children").Array() {
		if child.Get("kind").String() != "t1" {
			continue
		}
		data := child.Get("data")
		text := strings.TrimSpace(data.Get("body").String())
		if text == "" || text == "[deleted]" || text == "[removed]" {
			continue
		}
		comment := Comment{
			Author: data.Get("author").String(),
			Score:  data.Get("score").Int(),
			Body:   truncate(text, 240),
		}
		if permalink := data.Get("permalink").String(); strings.HasPrefix(permalink, "/") {
			comment.URL = "https://www.reddit.com" + permalink
		}
		comments = append(comments, comment)
		if len(comments) >= limit {
			break
		}
	}
	return comments, nil
}

func (c *RedditClient) get(ctx context.Context, token, pathAndQuery string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+pathAndQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+token)
	req.Header.Set("User-Agent", redditUserAgent)
	return c.do(req)
}

func (c *RedditClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("reddit error: status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}
	return body, nil
}

func postURL(post gjson.Result) string {
	if permalink := post.Get("permalink").String(); strings.HasPrefix(permalink, "/") {
		return "https://www.reddit.com" + permalink
	}
	return post.Get("url").String()
}

func postDate(post gjson.Result) string {
	createdUTC := post.Get("created_utc")
	if !createdUTC.Exists() {
		return "—"
	}
	return time.Unix(int64(createdUTC.Float()), 0).UTC().Format("2006-01-02")
}
