// Package identity is a client for the hosted identity provider. It is
// an explicit session object injected into components that issue
// mutating API requests; nothing in the application reads identity
// state through globals.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dcheng/assignment-tracker/internal/credential"
	"github.com/dcheng/assignment-tracker/internal/model"
)

// refreshTokenKey is the credential-store key for the session refresh
// token.
const refreshTokenKey = "identity-refresh-token"

// ErrNoSession is returned by Resume when no stored session exists.
var ErrNoSession = errors.New("no stored session")

// CredentialStore persists the session refresh token between runs.
type CredentialStore interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
}

// KeyringStore is the default CredentialStore backed by the system
// keyring.
type KeyringStore struct{}

func (KeyringStore) Get(key string) (string, error)      { return credential.Get(key) }
func (KeyringStore) Set(key string, value string) error  { return credential.Set(key, value) }
func (KeyringStore) Delete(key string) error             { return credential.Delete(key) }

// Service talks to the identity provider's REST API.
type Service struct {
	baseURL    string
	apiKey     string
	projectID  string
	httpClient *http.Client
	creds      CredentialStore
}

// NewService creates an identity service from configuration, persisting
// tokens in creds.
func NewService(cfg model.IdentityConfig, creds CredentialStore) *Service {
	return &Service{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		projectID: cfg.ProjectID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds: creds,
	}
}

// User is an authenticated identity. IDToken always re-resolves a
// fresh token; a token obtained earlier is never reused for a later
// request.
type User struct {
	svc    *Service
	Email  string
	UserID string
}

// signInResponse is the provider's password sign-in payload.
type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
	LocalID      string `json:"localId"`
}

// tokenResponse is the provider's refresh-token exchange payload.
type tokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// errorResponse is the provider's error envelope.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn authenticates with email and password, stores the refresh
// token, and returns the signed-in user.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var resp signInResponse
	if err := s.post(ctx, "/v1/accounts:signInWithPassword", body, &resp); err != nil {
		return nil, fmt.Errorf("signing in %s: %w", email, err)
	}

	if err := s.creds.Set(refreshTokenKey, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	return &User{svc: s, Email: resp.Email, UserID: resp.LocalID}, nil
}

// SignOut discards the stored session.
func (s *Service) SignOut() error {
	if err := s.creds.Delete(refreshTokenKey); err != nil {
		return fmt.Errorf("discarding session: %w", err)
	}
	return nil
}

// Resume restores a session from a stored refresh token. It does not
// contact the provider; the token is validated on first use. Returns
// ErrNoSession when nothing is stored.
func (s *Service) Resume() (*User, error) {
	token, err := s.creds.Get(refreshTokenKey)
	if err != nil || token == "" {
		return nil, ErrNoSession
	}
	return &User{svc: s}, nil
}

// IDToken exchanges the stored refresh token for a fresh ID token.
// Every call hits the provider so that an expired or revoked session
// is detected before any mutating request is sent.
func (u *User) IDToken(ctx context.Context) (string, error) {
	refresh, err := u.svc.creds.Get(refreshTokenKey)
	if err != nil || refresh == "" {
		return "", ErrNoSession
	}

	body := map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refresh,
	}

	var resp tokenResponse
	if err := u.svc.post(ctx, "/v1/token", body, &resp); err != nil {
		return "", fmt.Errorf("refreshing token: %w", err)
	}

	// The provider may rotate the refresh token on exchange.
	if resp.RefreshToken != "" && resp.RefreshToken != refresh {
		_ = u.svc.creds.Set(refreshTokenKey, resp.RefreshToken)
	}
	if u.UserID == "" {
		u.UserID = resp.UserID
	}

	return resp.IDToken, nil
}

// post issues a JSON POST to the provider with the application key and,
// when configured, the project billing/quota header.
func (s *Service) post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	url := s.baseURL + path + "?key=" + s.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.projectID != "" {
		req.Header.Set("X-Goog-User-Project", s.projectID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request POST %s: %w", path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var provErr errorResponse
		if json.Unmarshal(respBody, &provErr) == nil && provErr.Error.Message != "" {
			return fmt.Errorf(
				"identity provider error (%d) on %s: %s",
				resp.StatusCode, path, provErr.Error.Message,
			)
		}
		return fmt.Errorf(
			"unexpected status %d on POST %s: %s",
			resp.StatusCode, path, string(respBody),
		)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s: %w", path, err)
	}

	return nil
}
