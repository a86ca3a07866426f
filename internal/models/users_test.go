package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndVerifyUser(t *testing.T) {
	conn := openTestDB(t)

	user, err := RegisterUser(conn, "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "pw1", user.PasswordHash)

	got, err := VerifyUser(conn, "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestVerifyUserWrongPassword(t *testing.T) {
	conn := openTestDB(t)
	_, err := RegisterUser(conn, "alice", "pw1")
	require.NoError(t, err)

	_, err = VerifyUser(conn, "alice", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUserUnknown(t *testing.T) {
	conn := openTestDB(t)
	_, err := VerifyUser(conn, "nobody", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUsernameTaken(t *testing.T) {
	conn := openTestDB(t)
	_, err := RegisterUser(conn, "alice", "pw1")
	require.NoError(t, err)

	_, err = RegisterUser(conn, "alice", "pw2")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterMissingFields(t *testing.T) {
	conn := openTestDB(t)
	_, err := RegisterUser(conn, "", "pw1")
	require.ErrorIs(t, err, ErrValidation)
	_, err = RegisterUser(conn, "alice", "")
	require.ErrorIs(t, err, ErrValidation)
}
