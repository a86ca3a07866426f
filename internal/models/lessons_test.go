package models

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"homeroom/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCreateAndListLessons(t *testing.T) {
	conn := openTestDB(t)

	lesson, err := CreateLesson(conn, LessonFields{Name: "Algebra", Image: "http://img"}, &Author{ID: "u1", Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, lesson.ID)

	lessons, err := ListLessons(conn)
	require.NoError(t, err)

	var matches int
	for _, l := range lessons {
		if l.ID == lesson.ID {
			matches++
			require.Equal(t, "Algebra", l.Name)
			require.Equal(t, "http://img", l.Image)
			require.Equal(t, "alice", l.Author.Username)
		}
	}
	require.Equal(t, 1, matches)
}

func TestCreateLessonWithoutName(t *testing.T) {
	conn := openTestDB(t)
	_, err := CreateLesson(conn, LessonFields{}, nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateLessonAnonymousAuthor(t *testing.T) {
	conn := openTestDB(t)
	lesson, err := CreateLesson(conn, LessonFields{Name: "Geometry"}, nil)
	require.NoError(t, err)

	got, err := GetLesson(conn, lesson.ID, false)
	require.NoError(t, err)
	require.Empty(t, got.Author.ID)
	require.Empty(t, got.Author.Username)
}

func TestCreateTopicAppendsToSequence(t *testing.T) {
	conn := openTestDB(t)
	lesson, err := CreateLesson(conn, LessonFields{Name: "Algebra"}, nil)
	require.NoError(t, err)

	first, err := CreateTopic(conn, lesson.ID, TopicFields{Name: "Ch1", Homework: "p.5", Classwork: "ex 1-3", URL: "http://ch1"})
	require.NoError(t, err)
	second, err := CreateTopic(conn, lesson.ID, TopicFields{Name: "Ch2"})
	require.NoError(t, err)

	got, err := GetLesson(conn, lesson.ID, true)
	require.NoError(t, err)
	require.Equal(t, []string{first.ID, second.ID}, got.TopicIDs)
	require.Len(t, got.Topics, 2)
	require.Equal(t, "Ch1", got.Topics[0].Name)
	require.Equal(t, "p.5", got.Topics[0].Homework)
	require.Equal(t, "ex 1-3", got.Topics[0].Classwork)
	require.Equal(t, "http://ch1", got.Topics[0].URL)
}

func TestCreateTopicMissingLesson(t *testing.T) {
	conn := openTestDB(t)
	_, err := CreateTopic(conn, "no-such-lesson", TopicFields{Name: "Ch1"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTopicLeavesAuthorEmpty(t *testing.T) {
	conn := openTestDB(t)
	lesson, err := CreateLesson(conn, LessonFields{Name: "Algebra"}, nil)
	require.NoError(t, err)

	topic, err := CreateTopic(conn, lesson.ID, TopicFields{Name: "Ch1"})
	require.NoError(t, err)

	got, err := GetTopic(conn, topic.ID)
	require.NoError(t, err)
	require.Empty(t, got.Author.ID)
	require.Empty(t, got.Author.Username)
}

func TestUpdateTopicTouchesOnlyContentFields(t *testing.T) {
	conn := openTestDB(t)
	lesson, err := CreateLesson(conn, LessonFields{Name: "Algebra"}, nil)
	require.NoError(t, err)
	topic, err := CreateTopic(conn, lesson.ID, TopicFields{Name: "Ch1", Homework: "p.5"})
	require.NoError(t, err)

	updated, err := UpdateTopic(conn, topic.ID, TopicFields{Name: "Ch1 rev", URL: "http://v2", Homework: "p.6", Classwork: "ex 4"})
	require.NoError(t, err)
	require.Equal(t, topic.ID, updated.ID)
	require.Equal(t, "Ch1 rev", updated.Name)
	require.Equal(t, "p.6", updated.Homework)

	// Lesson linkage is unchanged by the overwrite.
	got, err := GetLesson(conn, lesson.ID, false)
	require.NoError(t, err)
	require.Equal(t, []string{topic.ID}, got.TopicIDs)
}

func TestUpdateTopicMissing(t *testing.T) {
	conn := openTestDB(t)
	_, err := UpdateTopic(conn, "no-such-topic", TopicFields{Name: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTopicLeavesDanglingID(t *testing.T) {
	conn := openTestDB(t)
	lesson, err := CreateLesson(conn, LessonFields{Name: "Algebra"}, nil)
	require.NoError(t, err)
	keep, err := CreateTopic(conn, lesson.ID, TopicFields{Name: "Ch1"})
	require.NoError(t, err)
	doomed, err := CreateTopic(conn, lesson.ID, TopicFields{Name: "Ch2"})
	require.NoError(t, err)

	require.NoError(t, DeleteTopic(conn, doomed.ID))

	_, err = GetTopic(conn, doomed.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The deleted topic's id stays in the sequence, but expansion skips it.
	got, err := GetLesson(conn, lesson.ID, true)
	require.NoError(t, err)
	require.Equal(t, []string{keep.ID, doomed.ID}, got.TopicIDs)
	require.Len(t, got.Topics, 1)
	require.Equal(t, keep.ID, got.Topics[0].ID)
}

func TestDeleteTopicMissing(t *testing.T) {
	conn := openTestDB(t)
	require.ErrorIs(t, DeleteTopic(conn, "no-such-topic"), ErrNotFound)
}

func TestGetLessonMissing(t *testing.T) {
	conn := openTestDB(t)
	_, err := GetLesson(conn, "no-such-lesson", true)
	require.ErrorIs(t, err, ErrNotFound)
}
