package usecase

import (
	"context"
	"fmt"

	"github.com/alexmenard/e2ee-api/config"
	"github.com/alexmenard/e2ee-api/internal/keys"
	models "github.com/alexmenard/e2ee-api/internal/keys/model"
	"github.com/alexmenard/e2ee-api/internal/keys/repository"
	"github.com/alexmenard/e2ee-api/pkg/errors"
	"github.com/alexmenard/e2ee-api/pkg/keybytes"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

const (
	signedPreKeysKept = 2

	// Advisory pool thresholds surfaced via Status. Nothing enforces them;
	// a drained pool only degrades forward secrecy.
	minUnusedOneTimePreKeys = 20
	maxUnusedOneTimePreKeys = 200
)

type KeysUsecase struct {
	repo   keys.Repository
	logger logger.Logger
	config config.Config
}

func NewKeysUsecase(repo keys.Repository, logger logger.Logger, config config.Config) *KeysUsecase {
	return &KeysUsecase{repo: repo, logger: logger, config: config}
}

func (uc *KeysUsecase) UploadKeys(ctx context.Context, deviceID string, cmd keys.UploadKeysCommand) (*keys.UploadSummaryDTO, error) {
	if cmd.SignedPreKey == nil {
		return nil, errors.InvalidArg("signed_prekey is required")
	}
	if cmd.SignedPreKey.KeyID <= 0 {
		return nil, errors.InvalidArg("signed_prekey.key_id must be > 0")
	}

	spkPub, err := keybytes.CanonicalPublicKey(cmd.SignedPreKey.PublicKey)
	if err != nil {
		return nil, errors.InvalidArg("signed_prekey.public_key: " + err.Error())
	}
	spkSig, err := keybytes.CanonicalSignature(cmd.SignedPreKey.Signature)
	if err != nil {
		return nil, errors.InvalidArg("signed_prekey.signature " + err.Error())
	}

	if len(cmd.OneTimePreKeys) == 0 {
		return nil, errors.ErrEmptyOneTimePreKeys
	}
	otpks := make([]models.OneTimePreKey, 0, len(cmd.OneTimePreKeys))
	for i, k := range cmd.OneTimePreKeys {
		if k.KeyID <= 0 {
			return nil, errors.InvalidArg(fmt.Sprintf("one_time_prekeys[%d].key_id must be > 0", i))
		}
		pub, err := keybytes.CanonicalPublicKey(k.PublicKey)
		if err != nil {
			return nil, errors.InvalidArg(fmt.Sprintf("one_time_prekeys[%d].public_key: %v", i, err))
		}
		otpks = append(otpks, models.OneTimePreKey{
			DeviceID:  deviceID,
			KeyID:     k.KeyID,
			PublicKey: pub,
		})
	}

	spk := &models.SignedPreKey{
		DeviceID:  deviceID,
		KeyID:     cmd.SignedPreKey.KeyID,
		PublicKey: spkPub,
		Signature: spkSig,
	}

	if err := uc.repo.SaveKeys(ctx, spk, otpks); err != nil {
		uc.logger.Errorf("error while saving keys in db: %v", err)
		return nil, errors.ErrKeyUploadFailed(err)
	}

	// Best-effort cleanup outside the upload transaction; a brief window
	// with >2 rows is tolerable, accumulation is not.
	if err := uc.repo.PruneSignedPreKeys(ctx, deviceID, signedPreKeysKept); err != nil {
		uc.logger.Warn("failed to prune signed prekeys", "device_id", deviceID, "err", err)
	}

	return &keys.UploadSummaryDTO{
		Status:                 "ok",
		DeviceID:               deviceID,
		SignedPreKeyKeyID:      cmd.SignedPreKey.KeyID,
		OneTimePreKeysReceived: len(otpks),
	}, nil
}

func (uc *KeysUsecase) FetchBundle(ctx context.Context, deviceID string) (*keys.BundleDTO, error) {
	bundle, err := uc.repo.ClaimBundle(ctx, deviceID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDeviceNotFound):
			return nil, errors.ErrUnknownDevice
		case errors.Is(err, repository.ErrNoSignedPreKey):
			return nil, errors.ErrNoSignedPreKey
		}
		uc.logger.Errorf("error while claiming bundle: %v", err)
		return nil, errors.ErrBundleFetchFailed(err)
	}

	dto := &keys.BundleDTO{
		DeviceID:    bundle.DeviceID,
		IdentityKey: bundle.IdentityKey,
		SignedPreKey: keys.SignedPreKeyDTO{
			KeyID:     bundle.SignedPreKey.KeyID,
			PublicKey: bundle.SignedPreKey.PublicKey,
			Signature: bundle.SignedPreKey.Signature,
		},
	}
	if bundle.OneTimePreKey != nil {
		dto.OneTimePreKey = &keys.OneTimePreKeyDTO{
			KeyID:     bundle.OneTimePreKey.KeyID,
			PublicKey: bundle.OneTimePreKey.PublicKey,
		}
	}
	return dto, nil
}

func (uc *KeysUsecase) Status(ctx context.Context, deviceID string) (*keys.StatusDTO, error) {
	dto := &keys.StatusDTO{DeviceID: deviceID}

	spk, err := uc.repo.LatestSignedPreKey(ctx, deviceID)
	if err != nil && !errors.Is(err, repository.ErrNoSignedPreKey) {
		uc.logger.Error("database error reading signed prekey", "err", err)
		return nil, errors.Internal("internal server error")
	}
	if spk != nil {
		dto.SignedPreKey = &keys.SignedPreKeySummaryDTO{
			KeyID:     spk.KeyID,
			CreatedAt: spk.CreatedAt,
		}
	}

	unused, err := uc.repo.CountUnusedOneTimePreKeys(ctx, deviceID)
	if err != nil {
		uc.logger.Error("database error counting one-time prekeys", "err", err)
		return nil, errors.Internal("internal server error")
	}

	recommended := maxUnusedOneTimePreKeys - unused
	if recommended < 0 {
		recommended = 0
	}
	dto.OneTimePreKeys = keys.PoolStatusDTO{
		Unused:            unused,
		MinRequired:       minUnusedOneTimePreKeys,
		MaxAllowed:        maxUnusedOneTimePreKeys,
		NeedsMore:         unused < minUnusedOneTimePreKeys,
		RecommendedUpload: recommended,
	}
	return dto, nil
}
