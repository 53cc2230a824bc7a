package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexmenard/e2ee-api/config"
	"github.com/alexmenard/e2ee-api/internal/identity"
	models "github.com/alexmenard/e2ee-api/internal/identity/model"
	"github.com/alexmenard/e2ee-api/internal/identity/repository"
	"github.com/alexmenard/e2ee-api/pkg/errors"
	"github.com/alexmenard/e2ee-api/pkg/hashing"
	"github.com/alexmenard/e2ee-api/pkg/keybytes"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

const maxDeviceIDLen = 64

// fallbackDeviceID is bound to sessions created without a device id.
const fallbackDeviceID = "unknown"

type IdentityUsecase struct {
	repo   identity.Repository
	logger logger.Logger
	config config.Config
}

func NewIdentityUsecase(repo identity.Repository, logger logger.Logger, config config.Config) *IdentityUsecase {
	return &IdentityUsecase{repo: repo, logger: logger, config: config}
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *IdentityUsecase) Register(ctx context.Context, cmd identity.RegisterCommand) (*identity.RegisteredUserDTO, error) {
	email := normalizeEmail(cmd.Email)
	if !emailRegex.MatchString(email) {
		return nil, errors.ErrInvalidEmail
	}
	if len(cmd.Password) < 8 {
		return nil, errors.ErrWeakPassword
	}

	if exists, err := uc.repo.EmailExists(ctx, email); err != nil {
		uc.logger.Error("database error checking email", "err", err)
		return nil, errors.Internal("internal server error")
	} else if exists {
		return nil, errors.ErrEmailTaken
	}

	hash, err := hashing.HashPassword(cmd.Password)
	if err != nil {
		uc.logger.Error("failed to hash password", "err", err)
		return nil, errors.Internal("internal server error")
	}

	u := &models.User{
		UUID:         uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		uc.logger.Errorf("error while saving user in db: %v", err)
		return nil, errors.Internal("registration failed")
	}

	return &identity.RegisteredUserDTO{UserUUID: u.UUID.String()}, nil
}

func (uc *IdentityUsecase) Login(ctx context.Context, cmd identity.LoginCommand) (*identity.LoginDTO, error) {
	email := normalizeEmail(cmd.Email)

	u, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a wrong password, so callers cannot probe for
			// registered emails.
			return nil, errors.ErrInvalidCredentials
		}
		uc.logger.Error("database error during login", "err", err)
		return nil, errors.Internal("internal server error")
	}

	if !hashing.VerifyPassword(cmd.Password, u.PasswordHash) {
		return nil, errors.ErrInvalidCredentials
	}

	deviceID := strings.TrimSpace(cmd.DeviceID)
	if deviceID == "" {
		deviceID = fallbackDeviceID
	}

	token, err := newSessionToken()
	if err != nil {
		uc.logger.Error("failed to generate session token", "err", err)
		return nil, errors.Internal("internal server error")
	}

	ttl := time.Duration(uc.config.Session.TTLSeconds) * time.Second
	session := &models.Session{
		Token:     token,
		UserID:    u.ID,
		DeviceID:  deviceID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.repo.CreateSession(ctx, session); err != nil {
		uc.logger.Error("failed to save session", "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &identity.LoginDTO{
		Token:    token,
		UserUUID: u.UUID.String(),
		DeviceID: deviceID,
	}, nil
}

func newSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func (uc *IdentityUsecase) RegisterDevice(ctx context.Context, userID int64, cmd identity.RegisterDeviceCommand) (*identity.DeviceDTO, error) {
	deviceID := strings.TrimSpace(cmd.DeviceID)
	if deviceID == "" || len(deviceID) > maxDeviceIDLen {
		return nil, errors.ErrInvalidDeviceID
	}

	canonical, err := keybytes.CanonicalPublicKey(cmd.IdentityKey)
	if err != nil {
		return nil, errors.InvalidArg("identity_key " + err.Error())
	}

	if exists, err := uc.repo.DeviceIDExists(ctx, deviceID); err != nil {
		uc.logger.Error("database error checking device_id", "err", err)
		return nil, errors.Internal("internal server error")
	} else if exists {
		return nil, errors.ErrDeviceIDTaken
	}

	device := &models.Device{
		UserID:      userID,
		DeviceID:    deviceID,
		IdentityKey: canonical,
	}
	if err := uc.repo.CreateDevice(ctx, device); err != nil {
		uc.logger.Errorf("error while saving device in db: %v", err)
		return nil, errors.Internal("device registration failed")
	}

	return &identity.DeviceDTO{DeviceID: deviceID, Status: "registered"}, nil
}

func (uc *IdentityUsecase) ListDevices(ctx context.Context, userUUID string) ([]string, error) {
	userUUID = strings.TrimSpace(userUUID)
	if userUUID == "" {
		return nil, errors.InvalidArg("user_uuid is required")
	}
	id, err := uuid.Parse(userUUID)
	if err != nil {
		return nil, errors.InvalidArg("user_uuid is not a valid uuid")
	}

	deviceIDs, err := uc.repo.ListDeviceIDs(ctx, id)
	if err != nil {
		uc.logger.Error("database error listing devices", "err", err)
		return nil, errors.Internal("internal server error")
	}
	if deviceIDs == nil {
		deviceIDs = []string{}
	}
	return deviceIDs, nil
}

func (uc *IdentityUsecase) Authenticate(ctx context.Context, token string) (*identity.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.ErrInvalidSession
	}

	session, err := uc.repo.GetActiveSession(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.ErrInvalidSession
		}
		uc.logger.Error("database error resolving session", "err", err)
		return nil, errors.Internal("internal server error")
	}

	u, err := uc.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.ErrInvalidSession
		}
		uc.logger.Error("database error resolving session user", "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &identity.Principal{
		UserID:   u.ID,
		UserUUID: u.UUID.String(),
		DeviceID: session.DeviceID,
	}, nil
}
