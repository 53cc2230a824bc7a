package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/alexmenard/e2ee-api/internal/conversations"
	"github.com/alexmenard/e2ee-api/internal/conversations/repository"
	"github.com/alexmenard/e2ee-api/pkg/errors"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ConversationsUsecase struct {
	repo   conversations.Repository
	logger logger.Logger
}

func NewConversationsUsecase(repo conversations.Repository, logger logger.Logger) *ConversationsUsecase {
	return &ConversationsUsecase{repo: repo, logger: logger}
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

func (uc *ConversationsUsecase) resolveOtherUser(ctx context.Context, otherUserUUID string) (int64, uuid.UUID, error) {
	otherUserUUID = strings.TrimSpace(otherUserUUID)
	if otherUserUUID == "" {
		return 0, uuid.Nil, errors.ErrMissingOtherUser
	}
	id, err := uuid.Parse(otherUserUUID)
	if err != nil {
		return 0, uuid.Nil, errors.ErrUnknownOtherUser
	}

	otherID, err := uc.repo.ResolveUserIDByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, uuid.Nil, errors.ErrUnknownOtherUser
		}
		uc.logger.Error("database error resolving user", "err", err)
		return 0, uuid.Nil, errors.Internal("internal server error")
	}
	return otherID, id, nil
}

func (uc *ConversationsUsecase) List(ctx context.Context, userID int64, limit int, cursor int64) (*conversations.ConversationListDTO, error) {
	limit = clampLimit(limit)
	if cursor < 0 {
		cursor = 0
	}

	rows, err := uc.repo.ListConversations(ctx, userID, limit, cursor)
	if err != nil {
		uc.logger.Error("database error listing conversations", "err", err)
		return nil, errors.Internal("internal server error")
	}

	out := make([]conversations.ConversationSummaryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, conversations.ConversationSummaryDTO{
			OtherUserUUID:    rows[i].OtherUserUUID,
			LastMessageID:    rows[i].LastMessageID,
			LastMessageAt:    rows[i].LastMessageAt,
			LastFromDeviceID: rows[i].LastFromDeviceID,
			UnreadCount:      rows[i].UnreadCount,
		})
	}

	// A full page means there may be older conversations beyond the last
	// row's anchor; a short page is the end of the list.
	var nextCursor *int64
	if len(out) == limit && limit > 0 {
		last := out[len(out)-1].LastMessageID
		nextCursor = &last
	}

	return &conversations.ConversationListDTO{
		Count:         len(out),
		Cursor:        cursor,
		NextCursor:    nextCursor,
		Conversations: out,
	}, nil
}

func (uc *ConversationsUsecase) MessagesWithUser(ctx context.Context, userID int64, otherUserUUID string, afterID int64, limit int) (*conversations.UserConversationDTO, error) {
	otherID, otherUUID, err := uc.resolveOtherUser(ctx, otherUserUUID)
	if err != nil {
		return nil, err
	}

	if afterID < 0 {
		afterID = 0
	}
	limit = clampLimit(limit)

	msgs, err := uc.repo.FetchUserMessages(ctx, userID, otherID, afterID, limit)
	if err != nil {
		uc.logger.Error("database error fetching user conversation", "err", err)
		return nil, errors.Internal("internal server error")
	}

	out := make([]conversations.UserMessageDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, conversations.UserMessageDTO{
			ID:           msgs[i].ID,
			FromDeviceID: msgs[i].SenderDeviceID,
			ToDeviceID:   msgs[i].RecipientDeviceID,
			Direction:    msgs[i].Direction,
			Ciphertext:   msgs[i].Ciphertext,
			CreatedAt:    msgs[i].CreatedAt,
		})
	}

	return &conversations.UserConversationDTO{
		OtherUserUUID: otherUUID.String(),
		AfterID:       afterID,
		Count:         len(out),
		Messages:      out,
	}, nil
}

func (uc *ConversationsUsecase) MarkRead(ctx context.Context, userID int64, otherUserUUID string) (*conversations.MarkReadResultDTO, error) {
	otherID, otherUUID, err := uc.resolveOtherUser(ctx, otherUserUUID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.MarkConversationRead(ctx, userID, otherID)
	if err != nil {
		uc.logger.Error("database error marking conversation read", "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &conversations.MarkReadResultDTO{
		OtherUserUUID: otherUUID.String(),
		Updated:       updated,
	}, nil
}
