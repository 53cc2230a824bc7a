package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/alexmenard/e2ee-api/internal/identity/model"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrSessionNotFound = errors.New("session not found")
)

type IdentityRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewIdentityRepository(db *bun.DB, logger logger.Logger) *IdentityRepository {
	return &IdentityRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *IdentityRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "identityRepo.CreateUser.Insert")
	}
	return nil
}

func (r *IdentityRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetUserByID.Scan")
	}
	return user, nil
}

func (r *IdentityRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetUserByEmail.Scan")
	}
	return user, nil
}

func (r *IdentityRepository) GetUserByUUID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("uuid = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetUserByUUID.Scan")
	}
	return user, nil
}

func (r *IdentityRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.db.NewSelect().Model((*models.User)(nil)).Where("email = ?", email).Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "identityRepo.EmailExists.Exists")
	}
	return exists, nil
}

func (r *IdentityRepository) CreateDevice(ctx context.Context, device *models.Device) error {
	_, err := r.db.NewInsert().Model(device).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "identityRepo.CreateDevice.Insert")
	}
	return nil
}

func (r *IdentityRepository) GetDeviceByDeviceID(ctx context.Context, deviceID string) (*models.Device, error) {
	device := new(models.Device)
	err := r.db.NewSelect().Model(device).Where("device_id = ?", deviceID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetDeviceByDeviceID.Scan")
	}
	return device, nil
}

func (r *IdentityRepository) DeviceIDExists(ctx context.Context, deviceID string) (bool, error) {
	exists, err := r.db.NewSelect().Model((*models.Device)(nil)).Where("device_id = ?", deviceID).Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "identityRepo.DeviceIDExists.Exists")
	}
	return exists, nil
}

func (r *IdentityRepository) ListDeviceIDs(ctx context.Context, userUUID uuid.UUID) ([]string, error) {
	var deviceIDs []string
	err := r.db.NewSelect().
		Model((*models.Device)(nil)).
		Column("device.device_id").
		Join("INNER JOIN users AS u ON u.id = device.user_id").
		Where("u.uuid = ?", userUUID).
		Order("device.created_at ASC").
		Scan(ctx, &deviceIDs)
	if err != nil {
		return nil, errors.Wrap(err, "identityRepo.ListDeviceIDs.Scan")
	}
	return deviceIDs, nil
}

func (r *IdentityRepository) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := r.db.NewInsert().Model(session).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "identityRepo.CreateSession.Insert")
	}
	return nil
}

func (r *IdentityRepository) GetActiveSession(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	session := new(models.Session)
	err := r.db.NewSelect().
		Model(session).
		Where("token = ?", token).
		Where("expires_at > ?", now).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetActiveSession.Scan")
	}
	return session, nil
}
