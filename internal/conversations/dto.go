package conversations

import "time"

type ConversationSummaryDTO struct {
	OtherUserUUID    string    `json:"other_user_uuid"`
	LastMessageID    int64     `json:"last_message_id"`
	LastMessageAt    time.Time `json:"last_message_at"`
	LastFromDeviceID string    `json:"last_from_device_id"`
	UnreadCount      int       `json:"unread_count"`
}

type ConversationListDTO struct {
	Count         int                      `json:"count"`
	Cursor        int64                    `json:"cursor"`
	NextCursor    *int64                   `json:"next_cursor"`
	Conversations []ConversationSummaryDTO `json:"conversations"`
}

type UserMessageDTO struct {
	ID           int64     `json:"id"`
	FromDeviceID string    `json:"from_device_id"`
	ToDeviceID   string    `json:"to_device_id"`
	Direction    string    `json:"direction"`
	Ciphertext   string    `json:"ciphertext"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserConversationDTO struct {
	OtherUserUUID string           `json:"other_user_uuid"`
	AfterID       int64            `json:"after_id"`
	Count         int              `json:"count"`
	Messages      []UserMessageDTO `json:"messages"`
}

type MarkReadResultDTO struct {
	OtherUserUUID string `json:"other_user_uuid"`
	Updated       int    `json:"updated"`
}
