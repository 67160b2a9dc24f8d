package boardsdk

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/boardify/pkg/httpx"
)

// Client talks to a Boardify server. The session cookie set by Signup or
// Login is kept in the HTTP client's cookie jar, so one Client represents
// one signed-in user.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// bearer, when set, is sent as an Authorization header instead of
	// relying on the cookie jar.
	bearer string
}

// NewClient creates a client with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails without options

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// NewClientWithToken creates a client that authenticates with a bearer
// session token, for callers that cannot hold cookies.
func NewClientWithToken(baseURL, token string) *Client {
	c := NewClient(baseURL)
	c.bearer = token
	return c
}

// SessionToken returns the raw session token currently held in the cookie
// jar, or the bearer token the client was created with.
func (c *Client) SessionToken() string {
	if c.bearer != "" {
		return c.bearer
	}
	if c.HTTPClient.Jar == nil {
		return ""
	}
	u, err := url.Parse(c.BaseURL + "/")
	if err != nil {
		return ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == httpx.SessionCookieName {
			return ck.Value
		}
	}
	return ""
}
