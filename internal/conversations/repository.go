package conversations

import (
	"context"

	"github.com/google/uuid"

	models "github.com/alexmenard/e2ee-api/internal/conversations/model"
)

type Repository interface {
	ResolveUserIDByUUID(ctx context.Context, userUUID uuid.UUID) (int64, error)

	// ListConversations groups the user's message traffic by counterpart
	// user, newest conversation first. cursor == 0 means the first page;
	// otherwise only conversations whose last message id is strictly below
	// the cursor are returned.
	ListConversations(ctx context.Context, userID int64, limit int, cursor int64) ([]models.ConversationSummary, error)

	// FetchUserMessages returns the merged message stream across every
	// device pair between the two users, ascending, marking delivered those
	// addressed to one of the querying user's devices.
	FetchUserMessages(ctx context.Context, userID, otherUserID int64, afterID int64, limit int) ([]models.DirectedMessage, error)

	// MarkConversationRead bulk-transitions every unread message sent by
	// otherUserID to userID. Returns the number of rows transitioned.
	MarkConversationRead(ctx context.Context, userID, otherUserID int64) (int, error)
}
