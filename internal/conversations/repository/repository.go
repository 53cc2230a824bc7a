package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/alexmenard/e2ee-api/internal/conversations/model"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

var ErrUserNotFound = errors.New("user not found")

type ConversationsRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewConversationsRepository(db *bun.DB, logger logger.Logger) *ConversationsRepository {
	return &ConversationsRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *ConversationsRepository) ResolveUserIDByUUID(ctx context.Context, userUUID uuid.UUID) (int64, error) {
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
		return 0, errors.Wrap(err, "conversationsRepo.ResolveUserIDByUUID.Scan")
	}
	return userID, nil
}

// listConversationsSQL groups every message the user sent or received by the
// counterpart user. The array_agg picks the sender device of the newest
// message in each group; the FILTER counts messages still unread by the
// querying user's devices.
const listConversationsSQL = `
SELECT
    ou.uuid AS other_user_uuid,
    MAX(m.id) AS last_message_id,
    MAX(m.created_at) AS last_message_at,
    (array_agg(m.sender_device_id ORDER BY m.id DESC))[1] AS last_from_device_id,
    COUNT(*) FILTER (WHERE m.read_at IS NULL AND rd.user_id = ?) AS unread_count
FROM messages AS m
JOIN devices AS sd ON sd.device_id = m.sender_device_id
JOIN devices AS rd ON rd.device_id = m.recipient_device_id
JOIN users AS ou ON ou.id = CASE WHEN sd.user_id = ? THEN rd.user_id ELSE sd.user_id END
WHERE sd.user_id = ? OR rd.user_id = ?
GROUP BY ou.uuid
HAVING ? = 0 OR MAX(m.id) < ?
ORDER BY last_message_id DESC
LIMIT ?
`

func (r *ConversationsRepository) ListConversations(ctx context.Context, userID int64, limit int, cursor int64) ([]models.ConversationSummary, error) {
	var rows []models.ConversationSummary
	err := r.db.NewRaw(listConversationsSQL,
		userID, userID, userID, userID, cursor, cursor, limit,
	).Scan(ctx, &rows)
	if err != nil {
		return nil, errors.Wrap(err, "conversationsRepo.ListConversations.Scan")
	}
	return rows, nil
}

const fetchUserMessagesSQL = `
SELECT
    m.id,
    m.sender_device_id,
    m.recipient_device_id,
    m.ciphertext,
    CASE WHEN sd.user_id = ? THEN 'out' ELSE 'in' END AS direction,
    m.created_at
FROM messages AS m
JOIN devices AS sd ON sd.device_id = m.sender_device_id
JOIN devices AS rd ON rd.device_id = m.recipient_device_id
WHERE ((sd.user_id = ? AND rd.user_id = ?) OR (sd.user_id = ? AND rd.user_id = ?))
  AND m.id > ?
ORDER BY m.id ASC
LIMIT ?
`

func (r *ConversationsRepository) FetchUserMessages(ctx context.Context, userID, otherUserID int64, afterID int64, limit int) ([]models.DirectedMessage, error) {
	var msgs []models.DirectedMessage

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewRaw(fetchUserMessagesSQL,
			userID, userID, otherUserID, otherUserID, userID, afterID, limit,
		).Scan(ctx, &msgs)
		if err != nil {
			return errors.Wrap(err, "conversationsRepo.FetchUserMessages.Scan")
		}

		ids := make([]int64, 0, len(msgs))
		for i := range msgs {
			if msgs[i].Direction == "in" {
				ids = append(ids, msgs[i].ID)
			}
		}
		if len(ids) == 0 {
			return nil
		}

		_, err = tx.NewUpdate().
			Table("messages").
			Set("delivered_at = COALESCE(delivered_at, ?)", time.Now()).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "conversationsRepo.FetchUserMessages.MarkDelivered")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return msgs, nil
}

// markConversationReadSQL marks read everything otherUser's devices sent to
// the querying user's devices. Setting delivered_at alongside preserves the
// rule that a read message is always delivered.
const markConversationReadSQL = `
UPDATE messages AS m
SET delivered_at = COALESCE(m.delivered_at, ?),
    read_at = COALESCE(m.read_at, ?)
FROM devices AS sd, devices AS rd
WHERE sd.device_id = m.sender_device_id
  AND rd.device_id = m.recipient_device_id
  AND sd.user_id = ?
  AND rd.user_id = ?
  AND m.read_at IS NULL
`

func (r *ConversationsRepository) MarkConversationRead(ctx context.Context, userID, otherUserID int64) (int, error) {
	now := time.Now()
	res, err := r.db.NewRaw(markConversationReadSQL,
		now, now, otherUserID, userID,
	).Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "conversationsRepo.MarkConversationRead.Exec")
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "conversationsRepo.MarkConversationRead.RowsAffected")
	}
	return int(updated), nil
}
