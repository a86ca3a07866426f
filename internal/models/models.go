package models

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Author is a snapshot of the creating user's identity, copied onto a record
// at creation time and never re-synced afterwards.
type Author struct {
	ID       string
	Username string
}

type Lesson struct {
	ID     string
	Name   string
	Image  string
	Author Author
	// TopicIDs is the insertion-ordered topic sequence. It may contain ids
	// of topics that have since been deleted.
	TopicIDs  []string
	Topics    []Topic
	CreatedAt time.Time
}

type Topic struct {
	ID        string
	Name      string
	URL       string
	Homework  string
	Classwork string
	Author    Author
	CreatedAt time.Time
}

// LessonFields is the allow-listed set of fields accepted from a lesson form.
type LessonFields struct {
	Name  string
	Image string
}

// TopicFields is the allow-listed set of fields accepted from a topic form.
type TopicFields struct {
	Name      string
	URL       string
	Homework  string
	Classwork string
}
