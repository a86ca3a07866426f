package server

import (
	"database/sql"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"homeroom/internal/logx"
	"homeroom/internal/models"
)

type Server struct {
	DB         *sql.DB
	CookieName string
	SessionTTL time.Duration

	// TopicOwnership, when set, gates topic edit/update/delete on the acting
	// user. The default (nil) enforces nothing: any visitor may modify any
	// topic, matching the app's historical behavior.
	TopicOwnership func(user *models.User, topic *models.Topic) bool

	tmpl map[string]*template.Template
}

// New parses every page template against the shared layout and returns a
// server with default cookie and session settings.
func New(db *sql.DB, templateDir string) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	return &Server{
		DB:         db,
		CookieName: "session_id",
		SessionTTL: 24 * time.Hour,
		tmpl:       templates,
	}, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(methodOverride)
	r.Use(s.withUser)

	r.Get("/", s.handleLanding)
	r.Get("/lessons", s.handleListLessons)
	r.Get("/lessons/new", s.requireAuth(s.handleNewLessonForm))
	r.Post("/lessons", s.handleCreateLesson)
	r.Get("/lessons/{id}", s.requireAuth(s.handleShowLesson))
	r.Get("/lessons/{id}/topics/new", s.handleNewTopicForm)
	r.Post("/lessons/{id}/topics", s.handleCreateTopic)
	r.Get("/lessons/{id}/topics/{topicID}/edit", s.handleEditTopicForm)
	r.Put("/lessons/{id}/topics/{topicID}", s.handleUpdateTopic)
	r.Delete("/lessons/{id}/topics/{topicID}", s.handleDeleteTopic)
	r.Get("/lessons/{id}/topics/{topicID}/chapter", s.handleShowChapter)

	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data map[string]any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		logx.Error(err, "render failed", "template", name)
	}
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, "landing", map[string]any{"User": userFrom(r)})
}

// redirectBack mirrors the old redirect("back") behavior: return to the
// referring page when known, otherwise to a safe fallback.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	if ref := r.Referer(); ref != "" {
		http.Redirect(w, r, ref, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}
