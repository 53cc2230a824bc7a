package messaging

import "time"

// Input commands
type SendCommand struct {
	RecipientDeviceID string
	Ciphertext        string
}

type FanoutPayload struct {
	DeviceID   string
	Ciphertext string
}

type SendToUserCommand struct {
	RecipientUserUUID string
	Payloads          []FanoutPayload
}

type AckCommand struct {
	IDs  []int64
	Type string // "delivered" or "read"
}

// Output DTOs
type SendResultDTO struct {
	MessageID int64  `json:"message_id"`
	Status    string `json:"status"`
}

type QueuedMessageDTO struct {
	DeviceID  string `json:"device_id"`
	MessageID int64  `json:"message_id"`
}

type SendToUserResultDTO struct {
	RecipientUserUUID string             `json:"recipient_user_uuid"`
	Status            string             `json:"status"`
	Queued            []QueuedMessageDTO `json:"queued"`
}

type InboxMessageDTO struct {
	ID           int64     `json:"id"`
	FromDeviceID string    `json:"from_device_id"`
	Ciphertext   string    `json:"ciphertext"`
	CreatedAt    time.Time `json:"created_at"`
}

type InboxDTO struct {
	DeviceID string            `json:"device_id"`
	AfterID  int64             `json:"after_id"`
	Count    int               `json:"count"`
	Messages []InboxMessageDTO `json:"messages"`
}

type AckResultDTO struct {
	Type      string `json:"type"`
	DeviceID  string `json:"device_id"`
	Requested int    `json:"requested"`
	Updated   int    `json:"updated"`
}

type ConversationMessageDTO struct {
	ID           int64     `json:"id"`
	FromDeviceID string    `json:"from_device_id"`
	ToDeviceID   string    `json:"to_device_id"`
	Direction    string    `json:"direction"` // "out" when I sent it, else "in"
	Ciphertext   string    `json:"ciphertext"`
	CreatedAt    time.Time `json:"created_at"`
}

type ConversationDTO struct {
	Me       string                   `json:"me"`
	Other    string                   `json:"other"`
	AfterID  int64                    `json:"after_id"`
	Count    int                      `json:"count"`
	Messages []ConversationMessageDTO `json:"messages"`
}
