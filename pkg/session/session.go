// Package session looks up the caller's identity at the external auth
// provider. The provider owns users and roles; this service only ever reads
// them. Two resolution modes exist: verifying the provider's HS256 session
// cookie locally when a shared secret is configured, or forwarding the cookie
// to the provider's get-session endpoint.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles assigned by the auth provider. Admins approve assets and manage
// categories; they cannot purchase assets.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	// ErrNotAuthenticated means no valid session accompanied the request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden means the session exists but lacks the required role.
	ErrForbidden = errors.New("not authorized")
)

// User is the identity slice this system reads from the auth provider.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	Role  string `json:"role"`
}

// Session is the verified identity attached to a request.
type Session struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Require is the single authorization guard applied by every privileged
// operation: it verifies that a session exists and, when requiredRole is
// non-empty, that the session carries that role. Returns the verified user.
func Require(sess *Session, requiredRole string) (*User, error) {
	if sess == nil || sess.User.ID == "" {
		return nil, ErrNotAuthenticated
	}
	if requiredRole != "" && sess.User.Role != requiredRole {
		return nil, fmt.Errorf("%w: requires role %s", ErrForbidden, requiredRole)
	}
	return &sess.User, nil
}

// IsAdmin reports whether the session belongs to an admin.
func IsAdmin(sess *Session) bool {
	return sess != nil && sess.User.Role == RoleAdmin
}

// Config mirrors the auth section of the service configuration.
type Config struct {
	BaseURL    string
	CookieName string
	Secret     string
}

// Client resolves session cookies into sessions.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a session client for the configured auth provider.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// CookieName returns the name of the session cookie to read.
func (c *Client) CookieName() string {
	return c.cfg.CookieName
}

// Resolve turns a raw session cookie value into a Session. A missing or
// invalid cookie yields ErrNotAuthenticated; transport failures are returned
// as-is so callers can distinguish an outage from an anonymous request.
func (c *Client) Resolve(ctx context.Context, cookieValue string) (*Session, error) {
	if cookieValue == "" {
		return nil, ErrNotAuthenticated
	}
	if c.cfg.Secret != "" {
		return c.verifyToken(cookieValue)
	}
	return c.fetchSession(ctx, cookieValue)
}

type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"picture"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// verifyToken validates the provider's HS256 session JWT locally.
func (c *Client) verifyToken(tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(c.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrNotAuthenticated
	}
	if claims.Subject == "" {
		return nil, ErrNotAuthenticated
	}

	role := claims.Role
	if role == "" {
		role = RoleUser
	}
	sess := &Session{
		User: User{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Image: claims.Image,
			Role:  role,
		},
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// fetchSession forwards the cookie to the provider's get-session endpoint.
// The provider answers 200 with a session body, or an empty/null body for an
// anonymous request.
func (c *Client) fetchSession(ctx context.Context, cookieValue string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/auth/get-session", nil)
	if err != nil {
		return nil, fmt.Errorf("build get-session request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: c.cfg.CookieName, Value: cookieValue})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get-session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get-session: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("get-session: read body: %w", err)
	}
	if len(body) == 0 || string(body) == "null" {
		return nil, ErrNotAuthenticated
	}

	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return nil, fmt.Errorf("get-session: decode body: %w", err)
	}
	if sess.User.ID == "" {
		return nil, ErrNotAuthenticated
	}
	if sess.User.Role == "" {
		sess.User.Role = RoleUser
	}
	return &sess, nil
}
