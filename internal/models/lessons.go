package models

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ListLessons returns every lesson, oldest first. Topic sequences are not
// loaded here; use GetLesson for those.
func ListLessons(db *sql.DB) ([]Lesson, error) {
	rows, err := db.Query(`SELECT id, name, image, author_id, author_username, created_at FROM lessons ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()
	var lessons []Lesson
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.Name, &l.Image, &l.Author.ID, &l.Author.Username, &l.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// CreateLesson persists a new lesson from the allow-listed form fields.
// author may be nil (the create route is reachable without a session); when
// present its identity is copied onto the lesson as a creation-time snapshot.
func CreateLesson(db *sql.DB, f LessonFields, author *Author) (*Lesson, error) {
	if f.Name == "" {
		return nil, ErrValidation
	}
	l := &Lesson{ID: uuid.NewString(), Name: f.Name, Image: f.Image}
	if author != nil {
		l.Author = *author
	}
	_, err := db.Exec(`INSERT INTO lessons (id, name, image, author_id, author_username) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Image, l.Author.ID, l.Author.Username)
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return l, nil
}

// GetLesson loads a lesson together with its ordered topic-id sequence. When
// expandTopics is set, each id is resolved to its full topic record; ids whose
// topic no longer exists stay in TopicIDs but are omitted from Topics.
func GetLesson(db *sql.DB, id string, expandTopics bool) (*Lesson, error) {
	row := db.QueryRow(`SELECT id, name, image, author_id, author_username, created_at FROM lessons WHERE id = ?`, id)
	var l Lesson
	err := row.Scan(&l.ID, &l.Name, &l.Image, &l.Author.ID, &l.Author.Username, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	rows, err := db.Query(`SELECT topic_id FROM lesson_topics WHERE lesson_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get lesson topics: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tid string
		if err := rows.Scan(&tid); err != nil {
			return nil, err
		}
		l.TopicIDs = append(l.TopicIDs, tid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if expandTopics {
		trows, err := db.Query(`SELECT t.id, t.name, t.url, t.homework, t.classwork, t.author_id, t.author_username, t.created_at
			FROM lesson_topics lt JOIN topics t ON t.id = lt.topic_id
			WHERE lt.lesson_id = ? ORDER BY lt.position`, id)
		if err != nil {
			return nil, fmt.Errorf("expand lesson topics: %w", err)
		}
		defer trows.Close()
		for trows.Next() {
			var t Topic
			if err := trows.Scan(&t.ID, &t.Name, &t.URL, &t.Homework, &t.Classwork, &t.Author.ID, &t.Author.Username, &t.CreatedAt); err != nil {
				return nil, err
			}
			l.Topics = append(l.Topics, t)
		}
		if err := trows.Err(); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

// CreateTopic creates a topic under the given lesson and appends its id to the
// lesson's topic sequence. The two writes are deliberately not wrapped in a
// transaction: a failure after the topic insert leaves an orphan topic that no
// lesson references.
func CreateTopic(db *sql.DB, lessonID string, f TopicFields) (*Topic, error) {
	if f.Name == "" {
		return nil, ErrValidation
	}
	var exists string
	err := db.QueryRow(`SELECT id FROM lessons WHERE id = ?`, lessonID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("check lesson: %w", err)
	}

	t := &Topic{ID: uuid.NewString(), Name: f.Name, URL: f.URL, Homework: f.Homework, Classwork: f.Classwork}
	_, err = db.Exec(`INSERT INTO topics (id, name, url, homework, classwork) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.URL, t.Homework, t.Classwork)
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	_, err = db.Exec(`INSERT INTO lesson_topics (lesson_id, topic_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1 FROM lesson_topics WHERE lesson_id = ?`,
		lessonID, t.ID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("append topic to lesson: %w", err)
	}
	return t, nil
}

func GetTopic(db *sql.DB, id string) (*Topic, error) {
	row := db.QueryRow(`SELECT id, name, url, homework, classwork, author_id, author_username, created_at FROM topics WHERE id = ?`, id)
	var t Topic
	err := row.Scan(&t.ID, &t.Name, &t.URL, &t.Homework, &t.Classwork, &t.Author.ID, &t.Author.Username, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return &t, nil
}

// UpdateTopic overwrites the four content fields of a topic. The id, author
// snapshot, and lesson linkage are untouched.
func UpdateTopic(db *sql.DB, id string, f TopicFields) (*Topic, error) {
	if f.Name == "" {
		return nil, ErrValidation
	}
	res, err := db.Exec(`UPDATE topics SET name = ?, url = ?, homework = ?, classwork = ? WHERE id = ?`,
		f.Name, f.URL, f.Homework, f.Classwork, id)
	if err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return GetTopic(db, id)
}

// DeleteTopic removes the topic record only. The id stays in the parent
// lesson's topic sequence as a dangling reference; GetLesson's expansion
// skips it.
func DeleteTopic(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
