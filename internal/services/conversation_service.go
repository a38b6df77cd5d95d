package services

import (
	"context"
	"log"
	"time"

	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type ConversationService interface {
	CreateConversation(ctx context.Context, tenantID, adminID int, subject string) (int, error)
	FindConversation(ctx context.Context, tenantID, adminID int) (int, error)
	GetConversationById(ctx context.Context, conversationID int) (*models.Conversation, error)
	GetConversationsForUser(ctx context.Context, userID int, role string) ([]models.ConversationSummary, error)
	IsParticipant(ctx context.Context, conversationID, userID int) (bool, error)
	GetParticipantIds(ctx context.Context, conversationID int) (int, int, error)
	SaveMessage(ctx context.Context, msg *models.Message) error
	GetMessagesByConversationId(ctx context.Context, conversationID, offset, limit int) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, conversationID int, viewerRole string) ([]int, error)
}

type conversationService struct {
	UserService *UserService
}

func NewConversationService(userService *UserService) ConversationService {
	return &conversationService{
		UserService: userService,
	}
}

func (cs *conversationService) CreateConversation(ctx context.Context, tenantID, adminID int, subject string) (int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("conversations").
		Columns("tenant_id", "admin_id", "subject", "created_at").
		Values(tenantID, adminID, subject, time.Now()).
		Suffix("RETURNING id")
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}
	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)
	var conversationID int
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&conversationID)
	if err != nil {
		log.Printf("Error creating conversation: %v", err)
		return 0, err
	}
	log.Printf("Conversation created with ID %d", conversationID)
	return conversationID, nil
}

func (cs *conversationService) FindConversation(ctx context.Context, tenantID, adminID int) (int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id").
		From("conversations").
		Where(squirrel.Eq{
			"tenant_id": tenantID,
			"admin_id":  adminID,
		}).
		OrderBy("created_at DESC").
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var conversationID int
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&conversationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Printf("No existing conversation between tenant %d and admin %d", tenantID, adminID)
			return 0, nil
		}
		log.Printf("Error finding conversation: %v", err)
		return 0, err
	}

	return conversationID, nil
}

func (cs *conversationService) GetConversationById(ctx context.Context, conversationID int) (*models.Conversation, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "tenant_id", "admin_id", "subject", "unread_admin", "unread_client", "last_message_at", "created_at").
		From("conversations").
		Where(squirrel.Eq{"id": conversationID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	var conv models.Conversation
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&conv.ID, &conv.TenantID, &conv.AdminID, &conv.Subject,
		&conv.UnreadAdmin, &conv.UnreadClient, &conv.LastMessageAt, &conv.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Printf("Conversation %d not found", conversationID)
			return nil, models.ErrConversationNotFound
		}
		log.Printf("Error getting conversation %d: %v", conversationID, err)
		return nil, err
	}

	return &conv, nil
}

func (cs *conversationService) GetConversationsForUser(ctx context.Context, userID int, role string) ([]models.ConversationSummary, error) {
	partyColumn := "tenant_id"
	otherColumn := "admin_id"
	if role == models.RoleAdmin {
		partyColumn = "admin_id"
		otherColumn = "tenant_id"
	}

	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("c.id", "c.tenant_id", "c.admin_id", "c.subject",
			"c.unread_admin", "c.unread_client", "c.last_message_at", "c.created_at",
			"u.username AS other_party_name",
			"m.content AS last_message_content").
		From("conversations c").
		Join("users u ON u.id = c." + otherColumn).
		LeftJoin("messages m ON m.conversation_id = c.id AND (m.sent_at, m.id) = (" +
			"SELECT sent_at, id FROM messages WHERE conversation_id = c.id ORDER BY sent_at DESC, id DESC LIMIT 1)").
		Where(squirrel.Eq{"c." + partyColumn: userID}).
		OrderBy("c.last_message_at DESC NULLS LAST")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error getting conversations for user %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var conversations []models.ConversationSummary
	for rows.Next() {
		var c models.ConversationSummary
		err := rows.Scan(&c.ID, &c.TenantID, &c.AdminID, &c.Subject,
			&c.UnreadAdmin, &c.UnreadClient, &c.LastMessageAt, &c.CreatedAt,
			&c.OtherPartyName, &c.LastMessageContent)
		if err != nil {
			log.Printf("Error scanning conversation row: %v", err)
			continue
		}
		c.UnreadCount = c.UnreadFor(role)
		c.LastMessageSentAt = c.LastMessageAt
		conversations = append(conversations, c)
	}

	if err := rows.Err(); err != nil {
		log.Printf("Error after iterating conversation rows: %v", err)
		return nil, err
	}

	log.Printf("Fetched %d conversations for user %d", len(conversations), userID)
	return conversations, nil
}

func (cs *conversationService) IsParticipant(ctx context.Context, conversationID, userID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1
            FROM conversations
            WHERE id = $1 AND (tenant_id = $2 OR admin_id = $2)
        )
    `

	var exists bool
	err := db.Pool.QueryRow(ctx, query, conversationID, userID).Scan(&exists)
	if err != nil {
		log.Printf("Error checking if user %d is a participant of conversation %d: %v", userID, conversationID, err)
		return false, err
	}

	return exists, nil
}

func (cs *conversationService) GetParticipantIds(ctx context.Context, conversationID int) (int, int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("tenant_id", "admin_id").
		From("conversations").
		Where(squirrel.Eq{"id": conversationID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, 0, err
	}

	var tenantID, adminID int
	err = db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&tenantID, &adminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, 0, models.ErrConversationNotFound
		}
		log.Printf("Error getting participants of conversation %d: %v", conversationID, err)
		return 0, 0, err
	}

	return tenantID, adminID, nil
}

// SaveMessage persists the message, its attachments and the counter bump
// in a single transaction so no reader ever sees a message without its
// unread increment. The conversation's last_message_at is advanced to the
// message's sent_at in the same statement.
func (cs *conversationService) SaveMessage(ctx context.Context, msg *models.Message) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		return err
	}
	defer tx.Rollback(ctx)

	insert := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("messages").
		Columns("conversation_id", "sender_id", "sender_type", "content", "sent_at").
		Values(msg.ConversationID, msg.SenderID, msg.SenderType, msg.Content, squirrel.Expr("NOW()")).
		Suffix("RETURNING id, sent_at")

	sqlStr, args, err := insert.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlStr, args)

	err = tx.QueryRow(ctx, sqlStr, args...).Scan(&msg.ID, &msg.SentAt)
	if err != nil {
		log.Printf("Error saving message: %v", err)
		return err
	}

	for i := range msg.Attachments {
		att := &msg.Attachments[i]
		attInsert := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
			Insert("attachments").
			Columns("message_id", "name", "url", "size", "type").
			Values(msg.ID, att.Name, att.URL, att.Size, att.Type).
			Suffix("RETURNING id, created_at")

		attSQL, attArgs, err := attInsert.ToSql()
		if err != nil {
			log.Printf("Failed to build SQL query: %v", err)
			return err
		}

		err = tx.QueryRow(ctx, attSQL, attArgs...).Scan(&att.ID, &att.CreatedAt)
		if err != nil {
			log.Printf("Error saving attachment %s for message %d: %v", att.Name, msg.ID, err)
			return err
		}
		att.MessageID = msg.ID
	}

	unreadColumn := "unread_client"
	if msg.SenderType == models.SenderClient {
		unreadColumn = "unread_admin"
	}

	update := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("conversations").
		Set(unreadColumn, squirrel.Expr(unreadColumn+" + 1")).
		Set("last_message_at", msg.SentAt).
		Where(squirrel.Eq{"id": msg.ConversationID})

	updateSQL, updateArgs, err := update.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	log.Printf("Executing SQL: %s, Args: %v", updateSQL, updateArgs)

	if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
		log.Printf("Error bumping %s for conversation %d: %v", unreadColumn, msg.ConversationID, err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing message transaction: %v", err)
		return err
	}

	log.Printf("Message %d saved in conversation %d by %s %d", msg.ID, msg.ConversationID, msg.SenderType, msg.SenderID)
	return nil
}

func (cs *conversationService) GetMessagesByConversationId(ctx context.Context, conversationID, offset, limit int) ([]models.Message, error) {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "conversation_id", "sender_id", "sender_type", "content", "sent_at", "read_at").
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("sent_at ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		log.Printf("Error building SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", sqlQuery, args)

	rows, err := db.Pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		log.Printf("Error executing query for conversation %d: %v", conversationID, err)
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	messageIndex := make(map[int]int)

	for rows.Next() {
		var msg models.Message
		err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.SenderType, &msg.Content, &msg.SentAt, &msg.ReadAt)
		if err != nil {
			log.Printf("Error scanning row: %v", err)
			return nil, err
		}
		messageIndex[msg.ID] = len(messages)
		messages = append(messages, msg)
	}

	if rows.Err() != nil {
		log.Printf("Error after iterating rows: %v", rows.Err())
		return nil, rows.Err()
	}

	if err := cs.attachTo(ctx, messages, messageIndex); err != nil {
		return nil, err
	}

	log.Printf("Fetched %d messages for conversation %d", len(messages), conversationID)
	return messages, nil
}

func (cs *conversationService) attachTo(ctx context.Context, messages []models.Message, messageIndex map[int]int) error {
	if len(messages) == 0 {
		return nil
	}

	ids := make([]int, 0, len(messages))
	for id := range messageIndex {
		ids = append(ids, id)
	}

	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "message_id", "name", "url", "size", "type", "created_at").
		From("attachments").
		Where(squirrel.Eq{"message_id": ids}).
		OrderBy("message_id ASC", "id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	rows, err := db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error fetching attachments: %v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var att models.Attachment
		err := rows.Scan(&att.ID, &att.MessageID, &att.Name, &att.URL, &att.Size, &att.Type, &att.CreatedAt)
		if err != nil {
			log.Printf("Error scanning attachment row: %v", err)
			continue
		}
		if idx, ok := messageIndex[att.MessageID]; ok {
			messages[idx].Attachments = append(messages[idx].Attachments, att)
		}
	}

	return rows.Err()
}

// MarkConversationRead stamps read_at on every unread message from the
// other side and resets the viewer's counter, in one transaction. The
// viewer's own messages and the opposite counter are never touched.
func (cs *conversationService) MarkConversationRead(ctx context.Context, conversationID int, viewerRole string) ([]int, error) {
	otherSide := models.SenderClient
	unreadColumn := "unread_admin"
	if viewerRole == models.RoleClient {
		otherSide = models.SenderAdmin
		unreadColumn = "unread_client"
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		return nil, err
	}
	defer tx.Rollback(ctx)

	update := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("messages").
		Set("read_at", squirrel.Expr("NOW()")).
		Where(squirrel.And{
			squirrel.Eq{"conversation_id": conversationID},
			squirrel.Eq{"sender_type": otherSide},
			squirrel.Eq{"read_at": nil},
		}).
		Suffix("RETURNING id")

	updateSQL, updateArgs, err := update.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", updateSQL, updateArgs)

	rows, err := tx.Query(ctx, updateSQL, updateArgs...)
	if err != nil {
		log.Printf("Error marking messages as read in conversation %d: %v", conversationID, err)
		return nil, err
	}

	var messageIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			log.Printf("Error scanning message ID: %v", err)
			return nil, err
		}
		messageIDs = append(messageIDs, id)
	}
	rows.Close()
	if rows.Err() != nil {
		log.Printf("Error after iterating rows: %v", rows.Err())
		return nil, rows.Err()
	}

	reset := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("conversations").
		Set(unreadColumn, 0).
		Where(squirrel.Eq{"id": conversationID})

	resetSQL, resetArgs, err := reset.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	log.Printf("Executing SQL: %s, Args: %v", resetSQL, resetArgs)

	if _, err := tx.Exec(ctx, resetSQL, resetArgs...); err != nil {
		log.Printf("Error resetting %s for conversation %d: %v", unreadColumn, conversationID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing read transaction: %v", err)
		return nil, err
	}

	log.Printf("Marked messages %v as read in conversation %d for %s", messageIDs, conversationID, viewerRole)
	return messageIDs, nil
}
