/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"fmt"

	"webchat/internal/apperr"
	"webchat/internal/entity"
	"webchat/internal/repository"
)

// Service exposing the account directory and profile maintenance.
type UserService interface {
	ListUsers() ([]*entity.User, error)                                   // All registered users, without secrets
	GetByUUID(uuid string) (*entity.User, error)                          // A single user by id
	UpdateProfile(userUUID, username, email string) (*entity.User, error) // Changes username/email, re-checking uniqueness
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (u *userService) ListUsers() ([]*entity.User, error) {
	return u.users.GetAll()
}

func (u *userService) GetByUUID(uuid string) (*entity.User, error) {
	return u.users.GetByUUID(uuid)
}

func (u *userService) UpdateProfile(userUUID, username, email string) (*entity.User, error) {
	user, err := u.users.GetByUUID(userUUID)
	if err != nil {
		return nil, err
	}

	if taken, err := u.users.UsernameTaken(username, userUUID); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: username already exists", apperr.ErrAlreadyExists)
	}
	if taken, err := u.users.EmailTaken(email, userUUID); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: email already exists", apperr.ErrAlreadyExists)
	}

	user.Username = username
	user.Email = email
	if err := u.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
