package messaging

import (
	"context"

	"github.com/google/uuid"

	models "github.com/alexmenard/e2ee-api/internal/messaging/model"
)

type Repository interface {
	// GetDeviceOwner resolves a device id to its owning user's internal id.
	GetDeviceOwner(ctx context.Context, deviceID string) (int64, error)
	DeviceExists(ctx context.Context, deviceID string) (bool, error)
	ResolveUserIDByUUID(ctx context.Context, userUUID uuid.UUID) (int64, error)
	ListDeviceIDsByUserID(ctx context.Context, userID int64) ([]string, error)

	InsertMessage(ctx context.Context, msg *models.Message) error
	// InsertMessages appends a fan-out batch in one transaction; all rows
	// land or none do.
	InsertMessages(ctx context.Context, msgs []models.Message) error

	// FetchInbox returns messages addressed to the device with id > afterID,
	// ascending, and marks them delivered within the same transaction.
	FetchInbox(ctx context.Context, deviceID string, afterID int64, limit int) ([]models.Message, error)

	// Ack transitions delivered_at (and read_at when markRead) for messages
	// addressed to the device. Returns the number of rows actually
	// transitioned; already-acknowledged and foreign ids are no-ops.
	Ack(ctx context.Context, deviceID string, ids []int64, markRead bool) (int, error)

	// FetchConversation returns messages in either direction between the two
	// devices, ascending, marking delivered those addressed to myDeviceID.
	FetchConversation(ctx context.Context, myDeviceID, otherDeviceID string, afterID int64, limit int) ([]models.Message, error)
}
