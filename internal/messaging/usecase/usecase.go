package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexmenard/e2ee-api/internal/messaging"
	models "github.com/alexmenard/e2ee-api/internal/messaging/model"
	"github.com/alexmenard/e2ee-api/internal/messaging/repository"
	"github.com/alexmenard/e2ee-api/pkg/errors"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	maxDeviceIDLen  = 64
)

const (
	ackTypeDelivered = "delivered"
	ackTypeRead      = "read"
)

type MessagingUsecase struct {
	repo   messaging.Repository
	logger logger.Logger
}

func NewMessagingUsecase(repo messaging.Repository, logger logger.Logger) *MessagingUsecase {
	return &MessagingUsecase{repo: repo, logger: logger}
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func clampAfterID(afterID int64) int64 {
	if afterID < 0 {
		return 0
	}
	return afterID
}

// requireOwnedDevice verifies the sender device exists and belongs to the
// authenticated user. An unknown device gets the same error as a foreign one.
func (uc *MessagingUsecase) requireOwnedDevice(ctx context.Context, userID int64, deviceID string) error {
	owner, err := uc.repo.GetDeviceOwner(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return errors.ErrSenderDeviceNotAllowed
		}
		uc.logger.Error("database error resolving device owner", "err", err)
		return errors.Internal("internal server error")
	}
	if owner != userID {
		return errors.ErrSenderDeviceNotAllowed
	}
	return nil
}

func (uc *MessagingUsecase) Send(ctx context.Context, senderUserID int64, senderDeviceID string, cmd messaging.SendCommand) (*messaging.SendResultDTO, error) {
	senderDeviceID = strings.TrimSpace(senderDeviceID)
	recipientDeviceID := strings.TrimSpace(cmd.RecipientDeviceID)
	if senderDeviceID == "" || len(senderDeviceID) > maxDeviceIDLen ||
		recipientDeviceID == "" || len(recipientDeviceID) > maxDeviceIDLen {
		return nil, errors.ErrInvalidDeviceID
	}
	if cmd.Ciphertext == "" {
		return nil, errors.ErrMissingCiphertext
	}

	if err := uc.requireOwnedDevice(ctx, senderUserID, senderDeviceID); err != nil {
		return nil, err
	}

	if exists, err := uc.repo.DeviceExists(ctx, recipientDeviceID); err != nil {
		uc.logger.Error("database error checking recipient device", "err", err)
		return nil, errors.Internal("internal server error")
	} else if !exists {
		return nil, errors.ErrUnknownRecipientDevice
	}

	msg := &models.Message{
		SenderDeviceID:    senderDeviceID,
		RecipientDeviceID: recipientDeviceID,
		Ciphertext:        cmd.Ciphertext,
	}
	if err := uc.repo.InsertMessage(ctx, msg); err != nil {
		uc.logger.Errorf("error while saving message in db: %v", err)
		return nil, errors.Internal("message send failed")
	}

	return &messaging.SendResultDTO{MessageID: msg.ID, Status: "queued"}, nil
}

func (uc *MessagingUsecase) SendToUser(ctx context.Context, senderUserID int64, senderDeviceID string, cmd messaging.SendToUserCommand) (*messaging.SendToUserResultDTO, error) {
	senderDeviceID = strings.TrimSpace(senderDeviceID)
	if senderDeviceID == "" || len(senderDeviceID) > maxDeviceIDLen {
		return nil, errors.ErrInvalidDeviceID
	}

	recipientUUID, err := uuid.Parse(strings.TrimSpace(cmd.RecipientUserUUID))
	if err != nil {
		return nil, errors.ErrUnknownRecipientUser
	}
	if len(cmd.Payloads) == 0 {
		return nil, errors.ErrEmptyPayloads
	}

	if err := uc.requireOwnedDevice(ctx, senderUserID, senderDeviceID); err != nil {
		return nil, err
	}

	recipientID, err := uc.repo.ResolveUserIDByUUID(ctx, recipientUUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.ErrUnknownRecipientUser
		}
		uc.logger.Error("database error resolving recipient user", "err", err)
		return nil, errors.Internal("internal server error")
	}

	targetIDs, err := uc.repo.ListDeviceIDsByUserID(ctx, recipientID)
	if err != nil {
		uc.logger.Error("database error listing recipient devices", "err", err)
		return nil, errors.Internal("internal server error")
	}
	targets := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		targets[id] = struct{}{}
	}

	msgs := make([]models.Message, 0, len(cmd.Payloads))
	for i, p := range cmd.Payloads {
		deviceID := strings.TrimSpace(p.DeviceID)
		if deviceID == "" {
			return nil, errors.InvalidArg(fmt.Sprintf("payloads[%d].device_id is required", i))
		}
		if p.Ciphertext == "" {
			return nil, errors.InvalidArg(fmt.Sprintf("payloads[%d].ciphertext is required", i))
		}
		if _, ok := targets[deviceID]; !ok {
			return nil, errors.ErrUnknownRecipientDevice
		}
		msgs = append(msgs, models.Message{
			SenderDeviceID:    senderDeviceID,
			RecipientDeviceID: deviceID,
			Ciphertext:        p.Ciphertext,
		})
	}

	if err := uc.repo.InsertMessages(ctx, msgs); err != nil {
		uc.logger.Errorf("error while saving fan-out batch in db: %v", err)
		return nil, errors.Internal("message send failed")
	}

	queued := make([]messaging.QueuedMessageDTO, 0, len(msgs))
	for i := range msgs {
		queued = append(queued, messaging.QueuedMessageDTO{
			DeviceID:  msgs[i].RecipientDeviceID,
			MessageID: msgs[i].ID,
		})
	}

	return &messaging.SendToUserResultDTO{
		RecipientUserUUID: recipientUUID.String(),
		Status:            "queued",
		Queued:            queued,
	}, nil
}

func (uc *MessagingUsecase) Inbox(ctx context.Context, deviceID string, afterID int64, limit int) (*messaging.InboxDTO, error) {
	afterID = clampAfterID(afterID)
	limit = clampLimit(limit)

	msgs, err := uc.repo.FetchInbox(ctx, deviceID, afterID, limit)
	if err != nil {
		uc.logger.Error("database error fetching inbox", "err", err)
		return nil, errors.Internal("internal server error")
	}

	out := make([]messaging.InboxMessageDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, messaging.InboxMessageDTO{
			ID:           msgs[i].ID,
			FromDeviceID: msgs[i].SenderDeviceID,
			Ciphertext:   msgs[i].Ciphertext,
			CreatedAt:    msgs[i].CreatedAt,
		})
	}

	return &messaging.InboxDTO{
		DeviceID: deviceID,
		AfterID:  afterID,
		Count:    len(out),
		Messages: out,
	}, nil
}

func (uc *MessagingUsecase) Ack(ctx context.Context, deviceID string, cmd messaging.AckCommand) (*messaging.AckResultDTO, error) {
	ackType := cmd.Type
	if ackType == "" {
		ackType = ackTypeDelivered
	}
	if ackType != ackTypeDelivered && ackType != ackTypeRead {
		return nil, errors.ErrInvalidType
	}

	seen := make(map[int64]struct{}, len(cmd.IDs))
	ids := make([]int64, 0, len(cmd.IDs))
	for _, id := range cmd.IDs {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.ErrNoIDs
	}

	updated, err := uc.repo.Ack(ctx, deviceID, ids, ackType == ackTypeRead)
	if err != nil {
		uc.logger.Error("database error acknowledging messages", "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &messaging.AckResultDTO{
		Type:      ackType,
		DeviceID:  deviceID,
		Requested: len(ids),
		Updated:   updated,
	}, nil
}

func (uc *MessagingUsecase) Conversation(ctx context.Context, myDeviceID, otherDeviceID string, afterID int64, limit int) (*messaging.ConversationDTO, error) {
	otherDeviceID = strings.TrimSpace(otherDeviceID)
	if otherDeviceID == "" || len(otherDeviceID) > maxDeviceIDLen {
		return nil, errors.ErrInvalidDeviceID
	}

	if exists, err := uc.repo.DeviceExists(ctx, otherDeviceID); err != nil {
		uc.logger.Error("database error checking device", "err", err)
		return nil, errors.Internal("internal server error")
	} else if !exists {
		return nil, errors.ErrUnknownOtherDevice
	}

	afterID = clampAfterID(afterID)
	limit = clampLimit(limit)

	msgs, err := uc.repo.FetchConversation(ctx, myDeviceID, otherDeviceID, afterID, limit)
	if err != nil {
		uc.logger.Error("database error fetching conversation", "err", err)
		return nil, errors.Internal("internal server error")
	}

	out := make([]messaging.ConversationMessageDTO, 0, len(msgs))
	for i := range msgs {
		direction := "in"
		if msgs[i].SenderDeviceID == myDeviceID {
			direction = "out"
		}
		out = append(out, messaging.ConversationMessageDTO{
			ID:           msgs[i].ID,
			FromDeviceID: msgs[i].SenderDeviceID,
			ToDeviceID:   msgs[i].RecipientDeviceID,
			Direction:    direction,
			Ciphertext:   msgs[i].Ciphertext,
			CreatedAt:    msgs[i].CreatedAt,
		})
	}

	return &messaging.ConversationDTO{
		Me:       myDeviceID,
		Other:    otherDeviceID,
		AfterID:  afterID,
		Count:    len(out),
		Messages: out,
	}, nil
}
