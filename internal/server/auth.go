package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"homeroom/internal/logx"
	"homeroom/internal/models"
)

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register", map[string]any{"User": userFrom(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	user, err := models.RegisterUser(s.DB, username, password)
	if err != nil {
		logx.Warn("registration failed", "username", username, "reason", err.Error())
		s.render(w, "register", map[string]any{"User": userFrom(r)})
		return
	}
	// Registration logs the new user straight in.
	if err := s.startSession(w, user); err != nil {
		logx.Error(err, "session start failed after registration")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/lessons", http.StatusSeeOther)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", map[string]any{"User": userFrom(r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	user, err := models.VerifyUser(s.DB, username, password)
	if err != nil {
		logx.Warn("login failed", "username", username)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := s.startSession(w, user); err != nil {
		logx.Error(err, "session start failed")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/lessons", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.CookieName); err == nil {
		if err := models.RevokeSession(s.DB, cookie.Value); err != nil {
			logx.Error(err, "session revoke failed")
		}
		http.SetCookie(w, &http.Cookie{Name: s.CookieName, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startSession issues a fresh opaque token for the user and hands it to the
// client as the session cookie.
func (s *Server) startSession(w http.ResponseWriter, user *models.User) error {
	token := uuid.NewString()
	expires := time.Now().Add(s.SessionTTL)
	if err := models.CreateSession(s.DB, user.ID, token, expires); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	})
	return nil
}
