/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package chat holds the core chat concepts: conversation identity and
// presence tracking. No transport or persistence logic lives here.
package chat

import (
	"fmt"

	"webchat/internal/apperr"
)

// ConversationID returns the canonical identifier of the private conversation
// between two users. The two UUIDs are sorted and joined with ":", so
// ConversationID(a, b) == ConversationID(b, a) for every pair. A user's chat
// with themselves is a valid conversation with id "<uuid>:<uuid>".
func ConversationID(userA, userB string) (string, error) {
	if userA == "" || userB == "" {
		return "", fmt.Errorf("%w: both user ids are required", apperr.ErrValidation)
	}
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + ":" + userB, nil
}
