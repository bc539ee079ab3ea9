// Package oauth implements Google sign-in for the portal.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrInvalidCode   = errors.New("invalid authorization code")
	ErrUserInfo      = errors.New("failed to get user info from Google")
	ErrNotConfigured = errors.New("Google sign-in is not configured")
)

// GoogleUser is the profile Google returns for an authenticated account
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleConfig holds the configuration for Google sign-in
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	SuccessURL   string
	ErrorURL     string
}

// GoogleService handles the Google OAuth flow
type GoogleService struct {
	config     *oauth2.Config
	successURL string
	errorURL   string
}

// NewGoogleService creates a new Google sign-in service
func NewGoogleService(cfg GoogleConfig) *GoogleService {
	return &GoogleService{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		successURL: cfg.SuccessURL,
		errorURL:   cfg.ErrorURL,
	}
}

// Configured reports whether client credentials are present
func (s *GoogleService) Configured() bool {
	return s.config.ClientID != "" && s.config.ClientSecret != ""
}

// AuthURL returns the Google consent page URL for the given state
func (s *GoogleService) AuthURL(state string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades an authorization code for the Google user profile
func (s *GoogleService) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	client := s.config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrUserInfo, resp.StatusCode, string(body))
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}

	return &user, nil
}

// SuccessURL returns the frontend URL to redirect to after a successful login
func (s *GoogleService) SuccessURL() string {
	return s.successURL
}

// ErrorURL returns the frontend URL to redirect to after a failed login
func (s *GoogleService) ErrorURL() string {
	return s.errorURL
}
