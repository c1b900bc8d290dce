package services

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/muffinboard/internal/shared"
	"golang.org/x/oauth2"
)

const (
	zohoAuthURL  = "https://accounts.zoho.com/oauth/v2/auth"
	zohoTokenURL = "https://accounts.zoho.com/oauth/v2/token"
)

// ZohoScopes are the Zoho Connect permissions requested at sign-in.
var ZohoScopes = []string{
	"zohopulse.feedList.CREATE",
	"zohopulse.feedList.READ",
	"zohopulse.feedList.UPDATE",
	"zohopulse.feedList.DELETE",
}

// ZohoOAuthConfig returns the [oauth2.Config] for the Zoho accounts server.
func ZohoOAuthConfig(clientID, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      ZohoScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  zohoAuthURL,
			TokenURL: zohoTokenURL,
		},
	}
}

// ZohoAuthorizationURL builds the Zoho consent page URL with offline access.
func ZohoAuthorizationURL(clientID, redirectURI, state string) string {
	return ZohoOAuthConfig(clientID, redirectURI).AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// AuthorizationURL returns the sign-in URL described by config.
//
// A configured Zoho client id sends the browser straight to Zoho; otherwise the backend's login path is used.
func AuthorizationURL(config *shared.Config) string {
	if zoho := config.Auth.Zoho; zoho.ClientID != "" {
		return ZohoAuthorizationURL(zoho.ClientID, zoho.RedirectURI, shared.GenerateID())
	}

	loginPath := config.Auth.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	baseURL := config.Backend.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return trimSlash(baseURL) + loginPath
}

// NewBoardClientFromConfig creates a [BoardClient] with a cookie jar and the configured timeout and session.
func NewBoardClientFromConfig(config *shared.Config, logger *log.Logger) (*BoardClient, error) {
	client, err := newHTTPClient(config.Backend.Timeout())
	if err != nil {
		return nil, err
	}

	return NewBoardClient(config.Backend.BaseURL, client, BoardClientOptions{
		SessionCookie:    config.Backend.SessionCookie,
		AuthorizationURL: AuthorizationURL(config),
		Logger:           logger,
	}), nil
}
