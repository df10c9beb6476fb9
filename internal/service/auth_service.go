/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"webchat/internal/apperr"
	"webchat/internal/chat"
	"webchat/internal/entity"
	"webchat/internal/repository"
)

// Service used for registration, login and credential maintenance.
type AuthService interface {
	Register(username, email, password string) (*entity.User, error)    // Creates a new user, returning it if successful
	Login(login, password string) (*entity.User, error)                 // Authenticates by username or email plus password
	ChangePassword(userUUID, currentPassword, newPassword string) error // Replaces the password after verifying the current one
	DeleteAccount(userUUID, password string) error                      // Removes the account after verifying the password
}

type authService struct {
	users    repository.UserRepository
	presence *chat.PresenceTracker
	log      *slog.Logger
}

func NewAuthService(users repository.UserRepository, presence *chat.PresenceTracker, log *slog.Logger) AuthService {
	return &authService{users: users, presence: presence, log: log}
}

func (a *authService) Register(username, email, password string) (*entity.User, error) {
	if taken, err := a.users.UsernameTaken(username, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: username already exists", apperr.ErrAlreadyExists)
	}
	if taken, err := a.users.EmailTaken(email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: email already exists", apperr.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	id := uuid.New().String()
	user := &entity.User{
		UUID:      id,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		Secret: entity.UserSecret{
			UserUUID: id,
			Hash:     string(hash),
		},
	}
	if err := a.users.Create(user); err != nil {
		return nil, err
	}
	a.log.Info("User registered", "user", user.UUID, "username", username)
	return user, nil
}

func (a *authService) Login(login, password string) (*entity.User, error) {
	user, err := a.users.GetByLogin(login)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Secret.Hash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: incorrect password", apperr.ErrInvalidCredentials)
	}
	return user, nil
}

func (a *authService) ChangePassword(userUUID, currentPassword, newPassword string) error {
	user, err := a.users.GetByUUIDWithSecret(userUUID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Secret.Hash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", apperr.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := a.users.UpdateSecret(userUUID, string(hash)); err != nil {
		return err
	}
	a.log.Info("Password changed", "user", userUUID)
	return nil
}

func (a *authService) DeleteAccount(userUUID, password string) error {
	user, err := a.users.GetByUUIDWithSecret(userUUID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Secret.Hash), []byte(password)); err != nil {
		return fmt.Errorf("%w: password is incorrect", apperr.ErrInvalidCredentials)
	}

	if err := a.users.Delete(userUUID); err != nil {
		return err
	}
	a.presence.SetOffline(userUUID)
	a.log.Info("Account deleted", "user", userUUID)
	return nil
}
