// Package session keeps per-browser state in Redis behind an opaque
// cookie. The API uses it for logout blacklisting and admin
// impersonation; regular request auth stays in the JWT.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/careerloft/careerloft/pkg/cache"
)

const keyPrefix = "careerloft:session:"

// Options controls the cookie and the Redis TTL.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

func DefaultOptions() Options {
	return Options{
		CookieName: "careerloft_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // flip on behind TLS
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// Session is the per-request view of one browser's stored state.
// Mutations are kept in memory until Save.
type Session struct {
	id    string
	data  map[string]any
	opts  Options
	dirty bool
}

func freshID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b)
}

// Set stages a value for the next Save.
func (s *Session) Set(key string, value any) {
	s.data[key] = value
	s.dirty = true
}

// Get returns the raw stored value.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString returns a string value, false when absent or not a string.
func (s *Session) GetString(key string) (string, bool) {
	str, ok := s.data[key].(string)
	return str, ok
}

// GetUint returns a numeric value as uint. Values loaded from Redis
// arrive as float64 because of the JSON round trip.
func (s *Session) GetUint(key string) (uint, bool) {
	switch n := s.data[key].(type) {
	case float64:
		return uint(n), true
	case int:
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}

// Delete stages removal of a key.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.dirty = true
}

// Invalidate wipes everything, used on logout.
func (s *Session) Invalidate() {
	s.data = map[string]any{}
	s.dirty = true
}

func (s *Session) ID() string { return s.id }

// Save writes staged changes to Redis and refreshes the cookie. A
// session nobody touched writes nothing.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.dirty {
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := cache.Set(keyPrefix+s.id, json.RawMessage(raw), s.opts.TTL); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
	s.dirty = false
	return nil
}

type ctxKey struct{}

// Middleware resolves the session cookie (minting a new ID when there
// is none) and puts the Session in the request context.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts, data: map[string]any{}}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				var stored map[string]any
				if cache.Get(keyPrefix+sess.id, &stored) {
					sess.data = stored
				}
			} else {
				sess.id = freshID()
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx returns the request's session. Outside the middleware it
// returns a throwaway session so callers need no nil checks.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{id: freshID(), data: map[string]any{}, opts: DefaultOptions()}
}
