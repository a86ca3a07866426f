package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"homeroom/internal/models"
)

type userKey struct{}

// withUser resolves the session cookie to a user once per request and hangs
// the result on the context. Downstream handlers never touch the cookie.
func (s *Server) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := s.resolveUser(r); u != nil {
			r = r.WithContext(context.WithValue(r.Context(), userKey{}, u))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) resolveUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return nil
	}
	sess, err := models.GetSession(s.DB, cookie.Value)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	u, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return u
}

// userFrom returns the acting user, or nil for anonymous requests.
func userFrom(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey{}).(*models.User)
	return u
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// methodOverride lets HTML forms issue PUT and DELETE by POSTing with a
// _method query parameter or form field. Runs before routing.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get("_method")
			if m == "" {
				r.ParseForm()
				m = r.PostForm.Get("_method")
			}
			switch strings.ToUpper(m) {
			case http.MethodPut, http.MethodDelete:
				r.Method = strings.ToUpper(m)
			}
		}
		next.ServeHTTP(w, r)
	})
}
