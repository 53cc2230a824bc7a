package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/alexmenard/e2ee-api/internal/messaging/model"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrUserNotFound   = errors.New("user not found")
)

type MessagingRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewMessagingRepository(db *bun.DB, logger logger.Logger) *MessagingRepository {
	return &MessagingRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *MessagingRepository) GetDeviceOwner(ctx context.Context, deviceID string) (int64, error) {
	var userID int64
	err := r.db.NewSelect().
		Table("devices").
		Column("user_id").
		Where("device_id = ?", deviceID).
		Limit(1).
		Scan(ctx, &userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrDeviceNotFound
		}
		return 0, errors.Wrap(err, "messagingRepo.GetDeviceOwner.Scan")
	}
	return userID, nil
}

func (r *MessagingRepository) DeviceExists(ctx context.Context, deviceID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Table("devices").
		Where("device_id = ?", deviceID).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "messagingRepo.DeviceExists.Exists")
	}
	return exists, nil
}

func (r *MessagingRepository) ResolveUserIDByUUID(ctx context.Context, userUUID uuid.UUID) (int64, error) {
	var userID int64
	err := r.db.NewSelect().
		Table("users").
		Column("id").
		Where("uuid = ?", userUUID).
		Limit(1).
		Scan(ctx, &userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, errors.Wrap(err, "messagingRepo.ResolveUserIDByUUID.Scan")
	}
	return userID, nil
}

func (r *MessagingRepository) ListDeviceIDsByUserID(ctx context.Context, userID int64) ([]string, error) {
	var deviceIDs []string
	err := r.db.NewSelect().
		Table("devices").
		Column("device_id").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx, &deviceIDs)
	if err != nil {
		return nil, errors.Wrap(err, "messagingRepo.ListDeviceIDsByUserID.Scan")
	}
	return deviceIDs, nil
}

func (r *MessagingRepository) InsertMessage(ctx context.Context, msg *models.Message) error {
	_, err := r.db.NewInsert().
		Model(msg).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messagingRepo.InsertMessage.Insert")
	}
	return nil
}

func (r *MessagingRepository) InsertMessages(ctx context.Context, msgs []models.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&msgs).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messagingRepo.InsertMessages.Insert")
		}
		return nil
	})
}

func (r *MessagingRepository) FetchInbox(ctx context.Context, deviceID string, afterID int64, limit int) ([]models.Message, error) {
	var msgs []models.Message

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&msgs).
			Where("recipient_device_id = ?", deviceID).
			Where("id > ?", afterID).
			Order("id ASC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return errors.Wrap(err, "messagingRepo.FetchInbox.Select")
		}

		if len(msgs) == 0 {
			return nil
		}

		// Fetching is the delivery acknowledgement. COALESCE keeps the first
		// delivery timestamp on refetch.
		ids := make([]int64, 0, len(msgs))
		for i := range msgs {
			ids = append(ids, msgs[i].ID)
		}
		_, err = tx.NewUpdate().
			Model((*models.Message)(nil)).
			Set("delivered_at = COALESCE(delivered_at, ?)", time.Now()).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messagingRepo.FetchInbox.MarkDelivered")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return msgs, nil
}

func (r *MessagingRepository) Ack(ctx context.Context, deviceID string, ids []int64, markRead bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	now := time.Now()
	q := r.db.NewUpdate().
		Model((*models.Message)(nil)).
		Set("delivered_at = COALESCE(delivered_at, ?)", now).
		Where("recipient_device_id = ?", deviceID).
		Where("id IN (?)", bun.In(ids))

	// Restrict to rows that still have something to transition so the
	// affected count reports actual state changes, not matches.
	if markRead {
		q = q.Set("read_at = COALESCE(read_at, ?)", now).
			Where("read_at IS NULL")
	} else {
		q = q.Where("delivered_at IS NULL")
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "messagingRepo.Ack.Update")
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "messagingRepo.Ack.RowsAffected")
	}
	return int(updated), nil
}

func (r *MessagingRepository) FetchConversation(ctx context.Context, myDeviceID, otherDeviceID string, afterID int64, limit int) ([]models.Message, error) {
	var msgs []models.Message

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&msgs).
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Where("(sender_device_id = ? AND recipient_device_id = ?)", myDeviceID, otherDeviceID).
					WhereOr("(sender_device_id = ? AND recipient_device_id = ?)", otherDeviceID, myDeviceID)
			}).
			Where("id > ?", afterID).
			Order("id ASC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return errors.Wrap(err, "messagingRepo.FetchConversation.Select")
		}

		ids := make([]int64, 0, len(msgs))
		for i := range msgs {
			if msgs[i].RecipientDeviceID == myDeviceID {
				ids = append(ids, msgs[i].ID)
			}
		}
		if len(ids) == 0 {
			return nil
		}

		_, err = tx.NewUpdate().
			Model((*models.Message)(nil)).
			Set("delivered_at = COALESCE(delivered_at, ?)", time.Now()).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messagingRepo.FetchConversation.MarkDelivered")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return msgs, nil
}
