package jellyfin

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jellyfin "github.com/sj14/jellyfin-go/api"
)

const (
	clientName    = "JellyFlow"
	clientVersion = "0.1.0"
	deviceName    = "JellyFlow Gallery"
	deviceID      = "jellyflow-1"
)

// Session is a signed-in user on one server. It is what the config file
// keeps between runs.
type Session struct {
	ServerURL string
	Token     string
	UserID    string
}

// Valid reports whether the session can page posters.
func (s Session) Valid() bool {
	return s.ServerURL != "" && s.Token != "" && s.UserID != ""
}

// Client pages posters and libraries for one session.
type Client struct {
	api     *jellyfin.APIClient
	session Session
}

func normalizeURL(serverURL string) string {
	serverURL = strings.TrimSpace(serverURL)
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}
	return strings.TrimRight(serverURL, "/")
}

// authorization is the MediaBrowser header value. The token is carried in
// the same header once signed in.
func authorization(token string) string {
	h := fmt.Sprintf(`MediaBrowser Client="%s", Device="%s", DeviceId="%s", Version="%s"`,
		clientName, deviceName, deviceID, clientVersion)
	if token != "" {
		h += fmt.Sprintf(`, Token="%s"`, token)
	}
	return h
}

// NewClient returns a client that is not signed in yet; call Login.
func NewClient(serverURL string) *Client {
	return Resume(Session{ServerURL: serverURL})
}

// Resume returns a client for a session saved by an earlier Login.
func Resume(s Session) *Client {
	s.ServerURL = normalizeURL(s.ServerURL)
	cfg := jellyfin.NewConfiguration()
	cfg.Servers = jellyfin.ServerConfigurations{{URL: s.ServerURL}}
	cfg.AddDefaultHeader("X-Emby-Authorization", authorization(s.Token))
	return &Client{api: jellyfin.NewAPIClient(cfg), session: s}
}

// Login signs in with a user name and password and returns the session to
// save. Later requests use it.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	body := *jellyfin.NewAuthenticateUserByName()
	body.SetUsername(username)
	body.SetPw(password)

	result, resp, err := c.api.UserAPI.AuthenticateUserByName(ctx).AuthenticateUserByName(body).Execute()
	if err != nil {
		return Session{}, fmt.Errorf("sign in as %s: %w (status: %s)", username, err, respStatus(resp))
	}
	user := result.GetUser()
	c.session.Token = result.GetAccessToken()
	if user.Id != nil {
		c.session.UserID = *user.Id
	}
	c.api.GetConfig().AddDefaultHeader("X-Emby-Authorization", authorization(c.session.Token))
	return c.session, nil
}

// Session returns the server, token and user of the client.
func (c *Client) Session() Session { return c.session }

func respStatus(resp *http.Response) string {
	if resp == nil {
		return "no response"
	}
	return resp.Status
}
