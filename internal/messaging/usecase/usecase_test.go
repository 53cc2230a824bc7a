package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmenard/e2ee-api/internal/messaging"
	"github.com/alexmenard/e2ee-api/internal/messaging/mocks"
	models "github.com/alexmenard/e2ee-api/internal/messaging/model"
	"github.com/alexmenard/e2ee-api/internal/messaging/repository"
	appErrors "github.com/alexmenard/e2ee-api/pkg/errors"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

func newUsecase(t *testing.T) (*MessagingUsecase, *mocks.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockRepository(ctrl)
	return NewMessagingUsecase(mockRepo, logger.Logger{}), mockRepo
}

func Test_Send(t *testing.T) {
	cmd := messaging.SendCommand{RecipientDeviceID: "dev-b", Ciphertext: "ciphertext"}

	t.Run("happy path", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.GetDeviceOwner(gomock.Any(), "dev-a").Return(int64(1), nil)
		g.DeviceExists(gomock.Any(), "dev-b").Return(true, nil)
		g.InsertMessage(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, msg *models.Message) error {
			msg.ID = 42
			return nil
		})

		dto, err := uc.Send(t.Context(), 1, "dev-a", cmd)
		require.NoError(t, err)
		assert.Equal(t, int64(42), dto.MessageID)
		assert.Equal(t, "queued", dto.Status)
	})

	t.Run("sad path - missing ciphertext", func(t *testing.T) {
		uc, _ := newUsecase(t)

		_, err := uc.Send(t.Context(), 1, "dev-a", messaging.SendCommand{RecipientDeviceID: "dev-b"})
		assert.Equal(t, appErrors.ErrMissingCiphertext, err)
	})

	t.Run("sad path - sender device owned by someone else", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().GetDeviceOwner(gomock.Any(), "dev-a").Return(int64(2), nil)

		_, err := uc.Send(t.Context(), 1, "dev-a", cmd)
		assert.Equal(t, appErrors.ErrSenderDeviceNotAllowed, err)
	})

	t.Run("sad path - sender device unknown", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().GetDeviceOwner(gomock.Any(), "dev-a").Return(int64(0), repository.ErrDeviceNotFound)

		_, err := uc.Send(t.Context(), 1, "dev-a", cmd)
		assert.Equal(t, appErrors.ErrSenderDeviceNotAllowed, err)
	})

	t.Run("sad path - unknown recipient", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.GetDeviceOwner(gomock.Any(), "dev-a").Return(int64(1), nil)
		g.DeviceExists(gomock.Any(), "dev-b").Return(false, nil)

		_, err := uc.Send(t.Context(), 1, "dev-a", cmd)
		assert.Equal(t, appErrors.ErrUnknownRecipientDevice, err)
	})
}

func Test_SendToUser(t *testing.T) {
	recipientUUID := uuid.New()

	cmd := messaging.SendToUserCommand{
		RecipientUserUUID: recipientUUID.String(),
		Payloads: []messaging.FanoutPayload{
			{DeviceID: "dev-b1", Ciphertext: "c1"},
			{DeviceID: "dev-b2", Ciphertext: "c2"},
		},
	}

	t.Run("happy path - one message per target device", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.GetDeviceOwner(gomock.Any(), "dev-a").Return(int64(1), nil)
		g.ResolveUserIDByUUID(gomock.Any(), recipientUUID).Return(int64(2), nil)
		g.ListDeviceIDsByUserID(gomock.Any(), int64(2)).Return([]string{"dev-b1", "dev-b2"}, nil)
		g.InsertMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, msgs []models.Message) error {
			for i := range msgs {
				msgs[i].ID = int64(100 + i)
			}
			return nil
		})

		dto, err := uc.SendToUser(t.Context(), 1, "dev-a", cmd)
		require.NoError(t, err)
		assert.Equal(t, "queued", dto.Status)
		require.Len(t, dto.Queued, 2)
		assert.Equal(t, "dev-b1", dto.Queued[0].DeviceID)
		assert.Equal(t, int64(100), dto.Queued[0].MessageID)
		assert.Equal(t, "dev-b2", dto.Queued[1].DeviceID)
	})

	t.Run("sad path - unknown recipient user", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.GetDeviceOwner(gomock.Any(), "dev-a").Return(int64(1), nil)
		g.ResolveUserIDByUUID(gomock.Any(), recipientUUID).Return(int64(0), repository.ErrUserNotFound)

		_, err := uc.SendToUser(t.Context(), 1, "dev-a", cmd)
		assert.Equal(t, appErrors.ErrUnknownRecipientUser, err)
	})

	t.Run("sad path - payload for a device the recipient does not own", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.GetDeviceOwner(gomock.Any(), "dev-a").Return(int64(1), nil)
		g.ResolveUserIDByUUID(gomock.Any(), recipientUUID).Return(int64(2), nil)
		g.ListDeviceIDsByUserID(gomock.Any(), int64(2)).Return([]string{"dev-b1"}, nil)

		_, err := uc.SendToUser(t.Context(), 1, "dev-a", cmd)
		assert.Equal(t, appErrors.ErrUnknownRecipientDevice, err)
	})

	t.Run("sad path - empty payloads", func(t *testing.T) {
		uc, _ := newUsecase(t)

		_, err := uc.SendToUser(t.Context(), 1, "dev-a", messaging.SendToUserCommand{
			RecipientUserUUID: recipientUUID.String(),
		})
		assert.Equal(t, appErrors.ErrEmptyPayloads, err)
	})
}

func Test_Inbox(t *testing.T) {
	t.Run("clamps paging and maps rows", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		now := time.Now()
		mockRepo.EXPECT().
			FetchInbox(gomock.Any(), "dev-b", int64(0), 50).
			Return([]models.Message{
				{ID: 1, SenderDeviceID: "dev-a", RecipientDeviceID: "dev-b", Ciphertext: "c1", CreatedAt: now},
			}, nil)

		dto, err := uc.Inbox(t.Context(), "dev-b", -5, 0)
		require.NoError(t, err)
		assert.Equal(t, "dev-b", dto.DeviceID)
		assert.Equal(t, int64(0), dto.AfterID)
		assert.Equal(t, 1, dto.Count)
		assert.Equal(t, "dev-a", dto.Messages[0].FromDeviceID)
	})

	t.Run("limit capped at 200", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			FetchInbox(gomock.Any(), "dev-b", int64(7), 200).
			Return(nil, nil)

		dto, err := uc.Inbox(t.Context(), "dev-b", 7, 5000)
		require.NoError(t, err)
		assert.Equal(t, 0, dto.Count)
		assert.Empty(t, dto.Messages)
	})

	t.Run("sad path - db down", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			FetchInbox(gomock.Any(), "dev-b", int64(0), 50).
			Return(nil, errors.New("db down"))

		_, err := uc.Inbox(t.Context(), "dev-b", 0, 0)
		assert.Equal(t, appErrors.Internal("internal server error"), err)
	})
}

func Test_Ack(t *testing.T) {
	t.Run("deduplicates ids and drops non-positive ones", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			Ack(gomock.Any(), "dev-b", []int64{3, 7}, true).
			Return(2, nil)

		dto, err := uc.Ack(t.Context(), "dev-b", messaging.AckCommand{
			IDs:  []int64{3, 3, -1, 0, 7},
			Type: "read",
		})
		require.NoError(t, err)
		assert.Equal(t, "read", dto.Type)
		assert.Equal(t, 2, dto.Requested)
		assert.Equal(t, 2, dto.Updated)
	})

	t.Run("type defaults to delivered", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			Ack(gomock.Any(), "dev-b", []int64{1}, false).
			Return(1, nil)

		dto, err := uc.Ack(t.Context(), "dev-b", messaging.AckCommand{IDs: []int64{1}})
		require.NoError(t, err)
		assert.Equal(t, "delivered", dto.Type)
	})

	t.Run("sad path - bad type", func(t *testing.T) {
		uc, _ := newUsecase(t)

		_, err := uc.Ack(t.Context(), "dev-b", messaging.AckCommand{IDs: []int64{1}, Type: "seen"})
		assert.Equal(t, appErrors.ErrInvalidType, err)
	})

	t.Run("sad path - nothing usable in ids", func(t *testing.T) {
		uc, _ := newUsecase(t)

		_, err := uc.Ack(t.Context(), "dev-b", messaging.AckCommand{IDs: []int64{0, -3}, Type: "read"})
		assert.Equal(t, appErrors.ErrNoIDs, err)
	})
}

func Test_Conversation(t *testing.T) {
	t.Run("happy path - direction tags relative to me", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.DeviceExists(gomock.Any(), "dev-b").Return(true, nil)
		g.FetchConversation(gomock.Any(), "dev-a", "dev-b", int64(0), 50).
			Return([]models.Message{
				{ID: 1, SenderDeviceID: "dev-a", RecipientDeviceID: "dev-b", Ciphertext: "c1"},
				{ID: 2, SenderDeviceID: "dev-b", RecipientDeviceID: "dev-a", Ciphertext: "c2"},
			}, nil)

		dto, err := uc.Conversation(t.Context(), "dev-a", "dev-b", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, "dev-a", dto.Me)
		assert.Equal(t, "dev-b", dto.Other)
		require.Len(t, dto.Messages, 2)
		assert.Equal(t, "out", dto.Messages[0].Direction)
		assert.Equal(t, "in", dto.Messages[1].Direction)
	})

	t.Run("sad path - unknown other device", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().DeviceExists(gomock.Any(), "dev-b").Return(false, nil)

		_, err := uc.Conversation(t.Context(), "dev-a", "dev-b", 0, 0)
		assert.Equal(t, appErrors.ErrUnknownOtherDevice, err)
	})
}
