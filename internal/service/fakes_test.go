package service

import (
	"fmt"
	"sort"
	"strings"

	"webchat/internal/apperr"
	"webchat/internal/entity"
)

// In-memory doubles for the repositories, enough for service-level tests.

type fakeUserRepository struct {
	users map[string]*entity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepository) Create(user *entity.User) error {
	f.users[user.UUID] = user
	return nil
}

func (f *fakeUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	if u, ok := f.users[uuid]; ok {
		copied := *u
		copied.Secret = entity.UserSecret{}
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, uuid)
}

func (f *fakeUserRepository) GetByUUIDWithSecret(uuid string) (*entity.User, error) {
	if u, ok := f.users[uuid]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, uuid)
}

func (f *fakeUserRepository) GetByLogin(login string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == login || u.Email == login {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, login)
}

func (f *fakeUserRepository) GetAll() ([]*entity.User, error) {
	all := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		copied.Secret = entity.UserSecret{}
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return strings.Compare(all[i].Username, all[j].Username) < 0
	})
	return all, nil
}

func (f *fakeUserRepository) UsernameTaken(username, excludeUUID string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username && u.UUID != excludeUUID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) EmailTaken(email, excludeUUID string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.UUID != excludeUUID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) Update(user *entity.User) error {
	existing, ok := f.users[user.UUID]
	if !ok {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, user.UUID)
	}
	existing.Username = user.Username
	existing.Email = user.Email
	existing.AvatarRef = user.AvatarRef
	return nil
}

func (f *fakeUserRepository) UpdateSecret(userUUID, hash string) error {
	if u, ok := f.users[userUUID]; ok {
		u.Secret.Hash = hash
		return nil
	}
	return fmt.Errorf("%w: user %s", apperr.ErrNotFound, userUUID)
}

func (f *fakeUserRepository) Delete(uuid string) error {
	delete(f.users, uuid)
	return nil
}

type fakeMessageRepository struct {
	conversations map[string][]*entity.Message
	appendErr     error
}

func newFakeMessageRepository() *fakeMessageRepository {
	return &fakeMessageRepository{conversations: make(map[string][]*entity.Message)}
}

func (f *fakeMessageRepository) Append(conversationID string, message *entity.Message) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.conversations[conversationID] = append(f.conversations[conversationID], message)
	return nil
}

func (f *fakeMessageRepository) List(conversationID string) ([]*entity.Message, error) {
	msgs := f.conversations[conversationID]
	if msgs == nil {
		return []*entity.Message{}, nil
	}
	return msgs, nil
}

func (f *fakeMessageRepository) totalStored() int {
	total := 0
	for _, msgs := range f.conversations {
		total += len(msgs)
	}
	return total
}
