package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"webchat/internal/apperr"
	"webchat/internal/entity"
)

func Test_UpdateProfile_ChangesBothFields(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepository()
	req.NoError(users.Create(&entity.User{UUID: "u1", Username: "alice", Email: "alice@example.com"}))

	svc := NewUserService(users)

	updated, err := svc.UpdateProfile("u1", "alicia", "alicia@example.com")
	req.NoError(err)
	req.Equal("alicia", updated.Username)
	req.Equal("alicia@example.com", updated.Email)

	stored, err := users.GetByUUID("u1")
	req.NoError(err)
	req.Equal("alicia", stored.Username)
	req.Equal("alicia@example.com", stored.Email)
}

func Test_UpdateProfile_KeepingOwnNameIsAllowed(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepository()
	req.NoError(users.Create(&entity.User{UUID: "u1", Username: "alice", Email: "alice@example.com"}))

	svc := NewUserService(users)

	// Same username, only the email changes. Uniqueness must not trip on self.
	updated, err := svc.UpdateProfile("u1", "alice", "new@example.com")
	req.NoError(err)
	req.Equal("alice", updated.Username)
	req.Equal("new@example.com", updated.Email)
}

func Test_UpdateProfile_RejectsTakenIdentity(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepository()
	req.NoError(users.Create(&entity.User{UUID: "u1", Username: "alice", Email: "alice@example.com"}))
	req.NoError(users.Create(&entity.User{UUID: "u2", Username: "bob", Email: "bob@example.com"}))

	svc := NewUserService(users)

	_, err := svc.UpdateProfile("u1", "bob", "alice@example.com")
	req.ErrorIs(err, apperr.ErrAlreadyExists)

	_, err = svc.UpdateProfile("u1", "alice", "bob@example.com")
	req.ErrorIs(err, apperr.ErrAlreadyExists)
}

func Test_UpdateProfile_UnknownUser(t *testing.T) {
	req := require.New(t)

	svc := NewUserService(newFakeUserRepository())

	_, err := svc.UpdateProfile("missing", "alice", "alice@example.com")
	req.ErrorIs(err, apperr.ErrNotFound)
}

func Test_ListUsers_OrderedByUsername(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepository()
	req.NoError(users.Create(&entity.User{UUID: "u2", Username: "bob", Email: "bob@example.com"}))
	req.NoError(users.Create(&entity.User{UUID: "u1", Username: "alice", Email: "alice@example.com"}))

	svc := NewUserService(users)

	all, err := svc.ListUsers()
	req.NoError(err)
	req.Len(all, 2)
	req.Equal("alice", all[0].Username)
	req.Equal("bob", all[1].Username)
}
