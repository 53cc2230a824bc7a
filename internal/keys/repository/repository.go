package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/alexmenard/e2ee-api/internal/keys/model"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrNoSignedPreKey = errors.New("no signed prekey available")
)

type KeysRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewKeysRepository(db *bun.DB, logger logger.Logger) *KeysRepository {
	return &KeysRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *KeysRepository) SaveKeys(ctx context.Context, spk *models.SignedPreKey, otpks []models.OneTimePreKey) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(spk).
			On("CONFLICT (device_id, key_id) DO UPDATE").
			Set("public_key = EXCLUDED.public_key").
			Set("signature = EXCLUDED.signature").
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "keysRepo.SaveKeys.UpsertSPK")
		}

		if len(otpks) > 0 {
			_, err = tx.NewInsert().
				Model(&otpks).
				On("CONFLICT (device_id, key_id) DO NOTHING").
				Exec(ctx)
			if err != nil {
				return errors.Wrap(err, "keysRepo.SaveKeys.InsertOTPKs")
			}
		}

		return nil
	})
}

func (r *KeysRepository) PruneSignedPreKeys(ctx context.Context, deviceID string, keep int) error {
	keepIDs := r.db.NewSelect().
		Model((*models.SignedPreKey)(nil)).
		Column("id").
		Where("device_id = ?", deviceID).
		OrderExpr("created_at DESC, id DESC").
		Limit(keep)

	_, err := r.db.NewDelete().
		Model((*models.SignedPreKey)(nil)).
		Where("device_id = ?", deviceID).
		Where("id NOT IN (?)", keepIDs).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "keysRepo.PruneSignedPreKeys.Delete")
	}
	return nil
}

func (r *KeysRepository) ClaimBundle(ctx context.Context, deviceID string) (*models.PreKeyBundle, error) {
	var bundle models.PreKeyBundle
	bundle.DeviceID = deviceID

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Table("devices").
			Column("identity_key").
			Where("device_id = ?", deviceID).
			Limit(1).
			Scan(ctx, &bundle.IdentityKey)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDeviceNotFound
			}
			return errors.Wrap(err, "keysRepo.ClaimBundle.IdentityKey")
		}

		spk := new(models.SignedPreKey)
		err = tx.NewSelect().
			Model(spk).
			Where("device_id = ?", deviceID).
			OrderExpr("created_at DESC, id DESC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoSignedPreKey
			}
			return errors.Wrap(err, "keysRepo.ClaimBundle.SignedPreKey")
		}
		bundle.SignedPreKey = *spk

		// Oldest unused prekey under an exclusive row lock. SKIP LOCKED keeps
		// concurrent claims from queueing on the same row; each claimer gets
		// a different prekey or none.
		otpk := new(models.OneTimePreKey)
		err = tx.NewSelect().
			Model(otpk).
			Where("device_id = ? AND used_at IS NULL", deviceID).
			Order("id ASC").
			Limit(1).
			For("UPDATE SKIP LOCKED").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Pool drained; forward secrecy degrades gracefully.
				return nil
			}
			return errors.Wrap(err, "keysRepo.ClaimBundle.SelectOTPK")
		}

		now := time.Now()
		_, err = tx.NewUpdate().
			Model(otpk).
			Set("used_at = ?", now).
			WherePK().
			Where("used_at IS NULL").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "keysRepo.ClaimBundle.MarkUsed")
		}
		otpk.UsedAt = &now
		bundle.OneTimePreKey = otpk

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &bundle, nil
}

func (r *KeysRepository) LatestSignedPreKey(ctx context.Context, deviceID string) (*models.SignedPreKey, error) {
	spk := new(models.SignedPreKey)
	err := r.db.NewSelect().
		Model(spk).
		Where("device_id = ?", deviceID).
		OrderExpr("created_at DESC, id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSignedPreKey
		}
		return nil, errors.Wrap(err, "keysRepo.LatestSignedPreKey.Scan")
	}
	return spk, nil
}

func (r *KeysRepository) CountUnusedOneTimePreKeys(ctx context.Context, deviceID string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.OneTimePreKey)(nil)).
		Where("device_id = ? AND used_at IS NULL", deviceID).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "keysRepo.CountUnusedOneTimePreKeys.Count")
	}
	return count, nil
}
