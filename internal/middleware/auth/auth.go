package auth

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"hat-costing/internal/session"
)

// Authorizer checks the single shared access password.
type Authorizer struct {
	hash []byte
}

// NewAuthorizer prefers a bcrypt hash; a plain password is hashed once here.
// With neither set the gate is open.
func NewAuthorizer(password, passwordHash string) (*Authorizer, error) {
	if passwordHash != "" {
		return &Authorizer{hash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return &Authorizer{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Authorizer{hash: hash}, nil
}

func (a *Authorizer) Enabled() bool {
	return len(a.hash) > 0
}

func (a *Authorizer) Authorize(credential string) bool {
	if !a.Enabled() {
		return true
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(credential)) == nil
}

// RequireAccess lets a request through when its session already passed the
// gate or when it carries valid Basic credentials (any user name).
// Every Basic attempt is counted on attempts, the same limiter that guards login.
func RequireAccess(a *Authorizer, attempts *httprate.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			if st := session.FromContext(r.Context()); st != nil && st.Authorized() {
				next.ServeHTTP(w, r)
				return
			}

			if password, ok := basicPassword(r); ok {
				if attempts != nil {
					key, err := httprate.KeyByIP(r)
					if err != nil {
						requireAuth(w, r)
						return
					}
					if attempts.RespondOnLimit(w, r, key) {
						return
					}
				}
				if a.Authorize(password) {
					next.ServeHTTP(w, r)
					return
				}
			}

			requireAuth(w, r)
		})
	}
}

func basicPassword(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", false
	}

	creds, err := base64.StdEncoding.DecodeString(authHeader[6:])
	if err != nil {
		return "", false
	}

	credPair := strings.SplitN(string(creds), ":", 2)
	if len(credPair) != 2 {
		return "", false
	}

	return credPair[1], true
}

func requireAuth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Costing"`)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"error": "접속 비밀번호가 필요합니다."})
}
