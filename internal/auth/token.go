// Package auth stores the bearer token the REST client sends to the backend.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvVar overrides any stored token.
const EnvVar = "CRUDADMIN_TOKEN"

const credFileName = "credentials.json"

// Credentials is the token the client authenticates with.
type Credentials struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"` // "env" | "file"
	SavedAt   time.Time  `json:"saved_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // JWT exp claim
}

// Expired reports whether the token carries an expiry before now.
func (c *Credentials) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Store keeps credentials in Dir/credentials.json.
type Store struct {
	Dir string
	now func() time.Time
}

// DefaultDir is ~/.crudadmin.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".crudadmin"), nil
}

// NewStore returns a store rooted at dir, or at DefaultDir when dir is empty.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Store{Dir: dir, now: time.Now}, nil
}

func (s *Store) path() string { return filepath.Join(s.Dir, credFileName) }

// Load returns nil, nil when no token is configured. EnvVar wins over the file.
func (s *Store) Load() (*Credentials, error) {
	if env := strings.TrimSpace(os.Getenv(EnvVar)); env != "" {
		return &Credentials{Token: stripBearer(env), Source: "env"}, nil
	}

	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", s.path(), err)
	}
	c.Token, c.Source = stripBearer(c.Token), "file"
	return &c, nil
}

// Save writes token with owner-only permissions and returns what was stored.
func (s *Store) Save(token string) (*Credentials, error) {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return nil, errors.New("empty token")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("credentials dir: %w", err)
	}

	c := &Credentials{Token: token, Source: "file", SavedAt: s.now().UTC()}
	if claims, ok := Claims(token); ok {
		if exp, ok := claims["exp"].(float64); ok {
			t := time.Unix(int64(exp), 0).UTC()
			c.ExpiresAt = &t
		}
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o600); err != nil {
		return nil, fmt.Errorf("write credentials: %w", err)
	}
	return c, nil
}

// Delete removes the credentials file; a missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// Claims decodes the payload of a JWT without verifying it. ok is false for
// opaque tokens.
func Claims(token string) (map[string]any, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, false
	}
	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}
	return claims, true
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
