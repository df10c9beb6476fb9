/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Represents a message sent between two users. Immutable once stored: the
// server assigns ID and Timestamp when the message is appended to its
// conversation.
type Message struct {
	ID           string    `json:"id"`           // Unique identifier
	SenderID     string    `json:"senderId"`     // UUID of the user that sent the message
	SenderName   string    `json:"senderName"`   // Display name of the sender at send time
	ReceiverID   string    `json:"receiverId"`   // UUID of the user that received it
	ReceiverName string    `json:"receiverName"` // Display name of the receiver at send time
	Body         string    `json:"message"`      // Actual content of the message
	Timestamp    time.Time `json:"timestamp"`    // Time of creation, assigned by the server
}
