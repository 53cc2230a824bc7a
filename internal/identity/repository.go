package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	models "github.com/alexmenard/e2ee-api/internal/identity/model"
)

type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUUID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	CreateDevice(ctx context.Context, device *models.Device) error
	GetDeviceByDeviceID(ctx context.Context, deviceID string) (*models.Device, error)
	DeviceIDExists(ctx context.Context, deviceID string) (bool, error)
	// ListDeviceIDs returns device ids for the user, oldest registration first.
	ListDeviceIDs(ctx context.Context, userUUID uuid.UUID) ([]string, error)

	CreateSession(ctx context.Context, session *models.Session) error
	// GetActiveSession resolves a bearer token; expired tokens are treated the
	// same as unknown ones.
	GetActiveSession(ctx context.Context, token string, now time.Time) (*models.Session, error)
}
