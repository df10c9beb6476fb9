/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"webchat/internal/apperr"
	"webchat/internal/entity"
)

// This repository is used to manipulate the users in the system. It is the
// account directory consumed by the chat service and the credential store
// consumed by the auth service.
type UserRepository interface {
	Create(user *entity.User) error // Inserts a user with its secret

	GetByUUID(uuid string) (*entity.User, error)           // Retrieves the user with the given uuid
	GetByUUIDWithSecret(uuid string) (*entity.User, error) // Same, with the secret loaded for credential checks
	GetByLogin(login string) (*entity.User, error)         // Retrieves the user whose username or email matches login, secret included
	GetAll() ([]*entity.User, error)                       // Retrieves all the users, WITHOUT their secret

	UsernameTaken(username, excludeUUID string) (bool, error) // True if another user already holds username
	EmailTaken(email, excludeUUID string) (bool, error)       // True if another user already holds email

	Update(user *entity.User) error            // Persists changed profile fields
	UpdateSecret(userUUID, hash string) error  // Replaces the stored password hash
	Delete(uuid string) error                  // Removes the user and its secret
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

// AutoMigrate creates the account tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.User{}, &entity.UserSecret{})
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	if err := repo.db.Create(user).Error; err != nil {
		return fmt.Errorf("%w: creating user: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (repo *SQLiteUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	var user entity.User
	err := repo.db.First(&user, "uuid = ?", uuid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, uuid)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading user: %v", apperr.ErrStorage, err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByUUIDWithSecret(uuid string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Preload("Secret").First(&user, "uuid = ?", uuid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, uuid)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading user: %v", apperr.ErrStorage, err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByLogin(login string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Preload("Secret").
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, login)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading user: %v", apperr.ErrStorage, err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetAll() ([]*entity.User, error) {
	var users []*entity.User
	if err := repo.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: listing users: %v", apperr.ErrStorage, err)
	}
	return users, nil
}

func (repo *SQLiteUserRepository) UsernameTaken(username, excludeUUID string) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.User{}).
		Where("username = ? AND uuid <> ?", username, excludeUUID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: checking username: %v", apperr.ErrStorage, err)
	}
	return count > 0, nil
}

func (repo *SQLiteUserRepository) EmailTaken(email, excludeUUID string) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.User{}).
		Where("email = ? AND uuid <> ?", email, excludeUUID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: checking email: %v", apperr.ErrStorage, err)
	}
	return count > 0, nil
}

func (repo *SQLiteUserRepository) Update(user *entity.User) error {
	if err := repo.db.Save(user).Error; err != nil {
		return fmt.Errorf("%w: updating user: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (repo *SQLiteUserRepository) UpdateSecret(userUUID, hash string) error {
	err := repo.db.Model(&entity.UserSecret{}).
		Where("user_uuid = ?", userUUID).
		Update("hash", hash).Error
	if err != nil {
		return fmt.Errorf("%w: updating secret: %v", apperr.ErrStorage, err)
	}
	return nil
}

func (repo *SQLiteUserRepository) Delete(uuid string) error {
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_uuid = ?", uuid).Delete(&entity.UserSecret{}).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", uuid).Delete(&entity.User{}).Error
	})
	if err != nil {
		return fmt.Errorf("%w: deleting user: %v", apperr.ErrStorage, err)
	}
	return nil
}
