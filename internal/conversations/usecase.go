package conversations

import "context"

type Usecase interface {
	List(ctx context.Context, userID int64, limit int, cursor int64) (*ConversationListDTO, error)
	MessagesWithUser(ctx context.Context, userID int64, otherUserUUID string, afterID int64, limit int) (*UserConversationDTO, error)
	MarkRead(ctx context.Context, userID int64, otherUserUUID string) (*MarkReadResultDTO, error)
}
