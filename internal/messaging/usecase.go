package messaging

import "context"

type Usecase interface {
	// Send appends one ciphertext envelope. The sender device must be owned
	// by the authenticated user; this is the sole defense against device
	// spoofing.
	Send(ctx context.Context, senderUserID int64, senderDeviceID string, cmd SendCommand) (*SendResultDTO, error)

	// SendToUser fans out one payload per target device of the recipient
	// user, atomically.
	SendToUser(ctx context.Context, senderUserID int64, senderDeviceID string, cmd SendToUserCommand) (*SendToUserResultDTO, error)

	// Inbox doubles as delivery acknowledgement: fetched messages are marked
	// delivered in the same transaction.
	Inbox(ctx context.Context, deviceID string, afterID int64, limit int) (*InboxDTO, error)

	// Ack is a bulk, idempotent acknowledgement; "read" implies delivered.
	Ack(ctx context.Context, deviceID string, cmd AckCommand) (*AckResultDTO, error)

	// Conversation is the two-device message view with direction tags.
	Conversation(ctx context.Context, myDeviceID, otherDeviceID string, afterID int64, limit int) (*ConversationDTO, error)
}
