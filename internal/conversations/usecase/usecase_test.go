package usecase

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmenard/e2ee-api/internal/conversations/mocks"
	models "github.com/alexmenard/e2ee-api/internal/conversations/model"
	"github.com/alexmenard/e2ee-api/internal/conversations/repository"
	appErrors "github.com/alexmenard/e2ee-api/pkg/errors"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

func newUsecase(t *testing.T) (*ConversationsUsecase, *mocks.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockRepository(ctrl)
	return NewConversationsUsecase(mockRepo, logger.Logger{}), mockRepo
}

func Test_List(t *testing.T) {
	otherUUID := uuid.New().String()

	t.Run("short page has no next cursor", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			ListConversations(gomock.Any(), int64(1), 50, int64(0)).
			Return([]models.ConversationSummary{
				{OtherUserUUID: otherUUID, LastMessageID: 9, LastMessageAt: time.Now(), LastFromDeviceID: "dev-b", UnreadCount: 2},
			}, nil)

		dto, err := uc.List(t.Context(), 1, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, dto.Count)
		assert.Nil(t, dto.NextCursor)
		assert.Equal(t, otherUUID, dto.Conversations[0].OtherUserUUID)
		assert.Equal(t, 2, dto.Conversations[0].UnreadCount)
	})

	t.Run("full page anchors the next cursor on the last row", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			ListConversations(gomock.Any(), int64(1), 2, int64(0)).
			Return([]models.ConversationSummary{
				{OtherUserUUID: uuid.New().String(), LastMessageID: 20},
				{OtherUserUUID: uuid.New().String(), LastMessageID: 10},
			}, nil)

		dto, err := uc.List(t.Context(), 1, 2, 0)
		require.NoError(t, err)
		require.NotNil(t, dto.NextCursor)
		assert.Equal(t, int64(10), *dto.NextCursor)
	})

	t.Run("limit and cursor are clamped", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			ListConversations(gomock.Any(), int64(1), 200, int64(0)).
			Return(nil, nil)

		dto, err := uc.List(t.Context(), 1, 9999, -4)
		require.NoError(t, err)
		assert.Equal(t, 0, dto.Count)
		assert.Empty(t, dto.Conversations)
	})
}

func Test_MessagesWithUser(t *testing.T) {
	otherUUID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.ResolveUserIDByUUID(gomock.Any(), otherUUID).Return(int64(2), nil)
		g.FetchUserMessages(gomock.Any(), int64(1), int64(2), int64(0), 50).
			Return([]models.DirectedMessage{
				{ID: 1, SenderDeviceID: "dev-a", RecipientDeviceID: "dev-b", Direction: "out", Ciphertext: "c1"},
				{ID: 2, SenderDeviceID: "dev-b", RecipientDeviceID: "dev-a", Direction: "in", Ciphertext: "c2"},
			}, nil)

		dto, err := uc.MessagesWithUser(t.Context(), 1, otherUUID.String(), 0, 0)
		require.NoError(t, err)
		assert.Equal(t, otherUUID.String(), dto.OtherUserUUID)
		assert.Equal(t, 2, dto.Count)
		assert.Equal(t, "out", dto.Messages[0].Direction)
		assert.Equal(t, "in", dto.Messages[1].Direction)
	})

	t.Run("sad path - missing user uuid", func(t *testing.T) {
		uc, _ := newUsecase(t)

		_, err := uc.MessagesWithUser(t.Context(), 1, "  ", 0, 0)
		assert.Equal(t, appErrors.ErrMissingOtherUser, err)
	})

	t.Run("sad path - unknown user", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			ResolveUserIDByUUID(gomock.Any(), otherUUID).
			Return(int64(0), repository.ErrUserNotFound)

		_, err := uc.MessagesWithUser(t.Context(), 1, otherUUID.String(), 0, 0)
		assert.Equal(t, appErrors.ErrUnknownOtherUser, err)
	})

	t.Run("sad path - malformed uuid maps to unknown user", func(t *testing.T) {
		uc, _ := newUsecase(t)

		_, err := uc.MessagesWithUser(t.Context(), 1, "not-a-uuid", 0, 0)
		assert.Equal(t, appErrors.ErrUnknownOtherUser, err)
	})
}

func Test_MarkRead(t *testing.T) {
	otherUUID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		g := mockRepo.EXPECT()
		g.ResolveUserIDByUUID(gomock.Any(), otherUUID).Return(int64(2), nil)
		g.MarkConversationRead(gomock.Any(), int64(1), int64(2)).Return(3, nil)

		dto, err := uc.MarkRead(t.Context(), 1, otherUUID.String())
		require.NoError(t, err)
		assert.Equal(t, otherUUID.String(), dto.OtherUserUUID)
		assert.Equal(t, 3, dto.Updated)
	})

	t.Run("sad path - unknown user", func(t *testing.T) {
		uc, mockRepo := newUsecase(t)

		mockRepo.EXPECT().
			ResolveUserIDByUUID(gomock.Any(), otherUUID).
			Return(int64(0), repository.ErrUserNotFound)

		_, err := uc.MarkRead(t.Context(), 1, otherUUID.String())
		assert.Equal(t, appErrors.ErrUnknownOtherUser, err)
	})
}
