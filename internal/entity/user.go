/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Represents a registered account. The password hash lives in UserSecret so
// that serializing a User never leaks it.
type User struct {
	UUID      string    `gorm:"primaryKey" json:"id"`              // Unique identifier
	Username  string    `gorm:"uniqueIndex;not null" json:"username"` // Display name, unique across the system
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	AvatarRef string    `json:"profilePicture,omitempty"` // Opaque reference to a profile picture, managed elsewhere
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`

	Secret UserSecret `gorm:"foreignKey:UserUUID;references:UUID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserStatus is a directory entry tagged with the user's presence, as served
// by the online-users listing.
type UserStatus struct {
	User
	IsOnline bool `json:"isOnline"`
}
