package handlers

import (
	"net/http"
	"time"

	"rama-crm/logging"
	"rama-crm/menu"
	"rama-crm/utils"

	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
)

// SessionSource is what the guard needs from the session store.
type SessionSource interface {
	Token() string
	Role() string
	Authenticated(now time.Time) bool
}

func enableCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimit sheds requests beyond the limiter's budget so a runaway renderer
// cannot flood the remote API through the view models.
func rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			logging.Logger.Warnf("Event ID: RATE_LIMITED, Description: %s %s rejected", r.Method, r.URL.Path)
			writeJSON(w, http.StatusTooManyRequests, result{Message: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionRole prefers the role carried by the token and falls back to the
// stored user.
func sessionRole(s SessionSource) menu.Role {
	if claims, err := utils.ParseSessionClaims(s.Token()); err == nil && claims.Role != "" {
		return menu.ParseRole(claims.Role)
	}
	return menu.ParseRole(s.Role())
}

// requireSession lets a request through only with a live session whose role
// is one of allowed.
func requireSession(s SessionSource, allowed []menu.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Authenticated(time.Now()) {
			writeJSON(w, http.StatusUnauthorized, result{Message: "Unauthenticated."})
			return
		}
		role := sessionRole(s)
		if !slices.Contains(allowed, role) {
			logging.Logger.Warnf("Event ID: ACCESS_FORBIDDEN, Description: Role %s may not %s %s", role, r.Method, r.URL.Path)
			writeJSON(w, http.StatusForbidden, result{Message: "Access forbidden: insufficient permissions"})
			return
		}
		next(w, r)
	}
}
