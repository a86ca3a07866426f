package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homeroom/internal/logx"
	"homeroom/internal/models"
)

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := models.ListLessons(s.DB)
	if err != nil {
		// Storage failures degrade to an empty listing; only the log sees
		// the cause.
		logx.Error(err, "list lessons failed")
		lessons = nil
	}
	s.render(w, "lessons", map[string]any{"Lessons": lessons, "User": userFrom(r)})
}

func (s *Server) handleNewLessonForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "new", map[string]any{"User": userFrom(r)})
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	fields := models.LessonFields{
		Name:  r.FormValue("name"),
		Image: r.FormValue("image"),
	}
	var author *models.Author
	if u := userFrom(r); u != nil {
		author = &models.Author{ID: u.ID, Username: u.Username}
	}
	if _, err := models.CreateLesson(s.DB, fields, author); err != nil {
		logx.Warn("lesson create failed", "reason", err.Error())
		s.render(w, "new", map[string]any{"User": userFrom(r)})
		return
	}
	http.Redirect(w, r, "/lessons", http.StatusSeeOther)
}

func (s *Server) handleShowLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lesson, err := models.GetLesson(s.DB, id, true)
	if err != nil {
		logx.Warn("lesson lookup failed", "lesson_id", id, "reason", err.Error())
		http.Redirect(w, r, "/lessons", http.StatusSeeOther)
		return
	}
	s.render(w, "show", map[string]any{"Lesson": lesson, "User": userFrom(r)})
}
