package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"homeroom/internal/logx"
	"homeroom/internal/models"
)

func (s *Server) handleNewTopicForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lesson, err := models.GetLesson(s.DB, id, false)
	if err != nil {
		logx.Warn("lesson lookup failed", "lesson_id", id, "reason", err.Error())
		http.Redirect(w, r, "/lessons", http.StatusSeeOther)
		return
	}
	s.render(w, "topic", map[string]any{"Lesson": lesson, "User": userFrom(r)})
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	fields := topicFields(r)
	if _, err := models.CreateTopic(s.DB, lessonID, fields); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Redirect(w, r, "/lessons", http.StatusSeeOther)
			return
		}
		logx.Error(err, "topic create failed", "lesson_id", lessonID)
	}
	http.Redirect(w, r, "/lessons/"+lessonID, http.StatusSeeOther)
}

func (s *Server) handleEditTopicForm(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	topicID := chi.URLParam(r, "topicID")
	topic, err := models.GetTopic(s.DB, topicID)
	if err != nil {
		redirectBack(w, r, "/lessons")
		return
	}
	if !s.topicAllowed(r, topic) {
		redirectBack(w, r, "/lessons/"+lessonID)
		return
	}
	s.render(w, "edit", map[string]any{"LessonID": lessonID, "Topic": topic, "User": userFrom(r)})
}

func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	topicID := chi.URLParam(r, "topicID")
	if !s.topicAllowedByID(r, topicID) {
		redirectBack(w, r, "/lessons/"+lessonID)
		return
	}
	if _, err := models.UpdateTopic(s.DB, topicID, topicFields(r)); err != nil {
		logx.Warn("topic update failed", "topic_id", topicID, "reason", err.Error())
		redirectBack(w, r, "/lessons/"+lessonID)
		return
	}
	http.Redirect(w, r, "/lessons/"+lessonID, http.StatusSeeOther)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	topicID := chi.URLParam(r, "topicID")
	if !s.topicAllowedByID(r, topicID) {
		redirectBack(w, r, "/lessons/"+lessonID)
		return
	}
	if err := models.DeleteTopic(s.DB, topicID); err != nil {
		logx.Warn("topic delete failed", "topic_id", topicID, "reason", err.Error())
		redirectBack(w, r, "/lessons/"+lessonID)
		return
	}
	http.Redirect(w, r, "/lessons/"+lessonID, http.StatusSeeOther)
}

func (s *Server) handleShowChapter(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	topicID := chi.URLParam(r, "topicID")
	topic, err := models.GetTopic(s.DB, topicID)
	if err != nil {
		logx.Warn("topic lookup failed", "topic_id", topicID, "reason", err.Error())
		http.Redirect(w, r, "/lessons/"+lessonID, http.StatusSeeOther)
		return
	}
	s.render(w, "chapter", map[string]any{"LessonID": lessonID, "Topic": topic, "User": userFrom(r)})
}

func topicFields(r *http.Request) models.TopicFields {
	return models.TopicFields{
		Name:      r.FormValue("name"),
		URL:       r.FormValue("url"),
		Homework:  r.FormValue("homework"),
		Classwork: r.FormValue("classwork"),
	}
}

func (s *Server) topicAllowed(r *http.Request, topic *models.Topic) bool {
	if s.TopicOwnership == nil {
		return true
	}
	return s.TopicOwnership(userFrom(r), topic)
}

func (s *Server) topicAllowedByID(r *http.Request, topicID string) bool {
	if s.TopicOwnership == nil {
		return true
	}
	topic, err := models.GetTopic(s.DB, topicID)
	if err != nil {
		return false
	}
	return s.TopicOwnership(userFrom(r), topic)
}
