package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

func (db *PgMessengerRepository) CreateAccount(params CreateAccountParams) (Account, error) {
	res := db.conn.QueryRow(
		"INSERT INTO accounts (username, email, password_hash, avatar, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, username, email, avatar, created_at",
		params.Username,
		params.EmailAddress,
		params.PasswordHash,
		params.Avatar,
		time.Now().UTC(),
	)

	var a Account
	err := res.Scan(
		&a.Id,
		&a.Username,
		&a.EmailAddress,
		&a.Avatar,
		&a.CreatedAt,
	)

	return a, err
}

func (db *PgMessengerRepository) UpdateAccount(params UpdateAccountParams) (Account, error) {
	res := db.conn.QueryRow(
		"UPDATE accounts SET username = $2, password_hash = $3, avatar = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING id, username, email, avatar, created_at, updated_at",
		params.AccountId,
		params.Username,
		params.PasswordHash,
		params.Avatar,
		time.Now().UTC(),
	)

	var a Account
	err := res.Scan(
		&a.Id,
		&a.Username,
		&a.EmailAddress,
		&a.Avatar,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	return a, err
}

func (db *PgMessengerRepository) GetAccountById(accountId int) (Account, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, avatar, created_at, updated_at FROM accounts "+
			"WHERE id = $1 LIMIT 1",
		accountId,
	)

	var a Account
	err := row.Scan(
		&a.Id,
		&a.Username,
		&a.EmailAddress,
		&a.Avatar,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	return a, err
}

func (db *PgMessengerRepository) GetAccountByEmail(email string) (Account, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, avatar, password_hash, created_at, updated_at FROM accounts "+
			"WHERE email = $1 LIMIT 1",
		email,
	)

	var a Account
	err := row.Scan(
		&a.Id,
		&a.Username,
		&a.EmailAddress,
		&a.Avatar,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	return a, err
}

func (db *PgMessengerRepository) GetAccountsByIds(accountIds []int) ([]Account, error) {
	rows, err := db.conn.Query(
		"SELECT id, username, email, avatar FROM accounts WHERE id = ANY($1) ORDER BY id",
		pq.Array(accountIds),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.Id, &a.Username, &a.EmailAddress, &a.Avatar); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

const conversationColumns = "id, external_id, is_group, COALESCE(admin_id, 0), group_name, group_image, " +
	"last_message_text, last_message_sender_id, last_message_type, last_message_seen, not_seen_length, " +
	"created_at, updated_at"

func scanConversation(row *sql.Row) (Conversation, error) {
	var c Conversation
	err := row.Scan(
		&c.Id,
		&c.ExternalId,
		&c.IsGroup,
		&c.AdminId,
		&c.GroupName,
		&c.GroupImage,
		&c.LastMessageText,
		&c.LastMessageSenderId,
		&c.LastMessageType,
		&c.LastMessageSeen,
		&c.NotSeenLength,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	return c, err
}

func (db *PgMessengerRepository) getParticipants(conversationId int) ([]Participant, error) {
	rows, err := db.conn.Query(
		"SELECT account_id, username, avatar FROM conversation_participants "+
			"WHERE conversation_id = $1 ORDER BY position",
		conversationId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.AccountId, &p.Username, &p.Avatar); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (db *PgMessengerRepository) GetConversationByExternalId(externalId string) (Conversation, error) {
	row := db.conn.QueryRow(
		"SELECT "+conversationColumns+" FROM conversations WHERE external_id = $1 LIMIT 1",
		externalId,
	)

	conv, err := scanConversation(row)
	if err != nil {
		return conv, err
	}

	conv.Participants, err = db.getParticipants(conv.Id)
	return conv, err
}

func (db *PgMessengerRepository) ListConversations(accountId int) ([]Conversation, error) {
	rows, err := db.conn.Query(
		"SELECT "+conversationColumns+" FROM conversations "+
			"WHERE id IN (SELECT conversation_id FROM conversation_participants WHERE account_id = $1) "+
			"ORDER BY updated_at DESC",
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(
			&c.Id,
			&c.ExternalId,
			&c.IsGroup,
			&c.AdminId,
			&c.GroupName,
			&c.GroupImage,
			&c.LastMessageText,
			&c.LastMessageSenderId,
			&c.LastMessageType,
			&c.LastMessageSeen,
			&c.NotSeenLength,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range conversations {
		participants, err := db.getParticipants(conversations[i].Id)
		if err != nil {
			return nil, err
		}
		conversations[i].Participants = participants
	}

	return conversations, nil
}

func (db *PgMessengerRepository) CreateConversation(params CreateConversationParams) (Conversation, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Conversation{}, err
	}
	defer tx.Rollback()

	var adminId any
	if params.AdminId != 0 {
		adminId = params.AdminId
	}

	row := tx.QueryRow(
		"INSERT INTO conversations (external_id, is_group, admin_id, group_name, group_image, "+
			"last_message_text, last_message_sender_id, last_message_type, last_message_seen, not_seen_length, "+
			"created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) "+
			"RETURNING "+conversationColumns,
		params.ExternalId,
		params.IsGroup,
		adminId,
		params.GroupName,
		params.GroupImage,
		params.LastMessage.Text,
		params.LastMessage.SenderId,
		params.LastMessage.Type,
		params.LastMessage.Seen,
		params.LastMessage.NotSeenLength,
		time.Now().UTC(),
	)

	conv, err := scanConversation(row)
	if err != nil {
		return conv, err
	}

	for i, p := range params.Participants {
		if _, err := tx.Exec(
			"INSERT INTO conversation_participants (conversation_id, account_id, username, avatar, position) "+
				"VALUES ($1, $2, $3, $4, $5)",
			conv.Id, p.AccountId, p.Username, p.Avatar, i,
		); err != nil {
			return Conversation{}, fmt.Errorf("insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Conversation{}, err
	}

	conv.Participants = params.Participants
	return conv, nil
}

func (db *PgMessengerRepository) UpdateConversationSummary(conversationId int, summary SummaryParams) error {
	_, err := db.conn.Exec(
		"UPDATE conversations SET last_message_text = $2, last_message_sender_id = $3, "+
			"last_message_type = $4, last_message_seen = $5, not_seen_length = $6, updated_at = $7 "+
			"WHERE id = $1",
		conversationId,
		summary.Text,
		summary.SenderId,
		summary.Type,
		summary.Seen,
		summary.NotSeenLength,
		time.Now().UTC(),
	)

	return err
}

func (db *PgMessengerRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	row := db.conn.QueryRow(
		"INSERT INTO messages (conversation_id, sender_id, sender_username, sender_avatar, "+
			"text, image, audio, video, seen, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9) "+
			"RETURNING id, conversation_id, sender_id, sender_username, sender_avatar, "+
			"text, image, audio, video, seen, created_at",
		params.ConversationId,
		params.SenderId,
		params.SenderUsername,
		params.SenderAvatar,
		params.Text,
		params.Image,
		params.Audio,
		params.Video,
		time.Now().UTC(),
	)

	return scanMessage(row)
}

func scanMessage(row *sql.Row) (Message, error) {
	var m Message
	err := row.Scan(
		&m.Id,
		&m.ConversationId,
		&m.SenderId,
		&m.SenderUsername,
		&m.SenderAvatar,
		&m.Text,
		&m.Image,
		&m.Audio,
		&m.Video,
		&m.Seen,
		&m.CreatedAt,
	)

	return m, err
}

func (db *PgMessengerRepository) ListMessages(conversationId int) ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT id, conversation_id, sender_id, sender_username, sender_avatar, "+
			"text, image, audio, video, seen, created_at FROM messages "+
			"WHERE conversation_id = $1 ORDER BY created_at",
		conversationId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.Id,
			&m.ConversationId,
			&m.SenderId,
			&m.SenderUsername,
			&m.SenderAvatar,
			&m.Text,
			&m.Image,
			&m.Audio,
			&m.Video,
			&m.Seen,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (db *PgMessengerRepository) CountUnseenMessages(conversationId, excludeSenderId int) (int, error) {
	row := db.conn.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE conversation_id = $1 AND seen = false AND sender_id != $2",
		conversationId,
		excludeSenderId,
	)

	var count int
	err := row.Scan(&count)
	return count, err
}

func (db *PgMessengerRepository) MarkMessagesSeen(conversationId int) error {
	_, err := db.conn.Exec(
		"UPDATE messages SET seen = true WHERE conversation_id = $1 AND seen = false",
		conversationId,
	)

	return err
}

func (db *PgMessengerRepository) ResetConversationSeen(conversationId int) error {
	_, err := db.conn.Exec(
		"UPDATE conversations SET last_message_seen = true, not_seen_length = 0, updated_at = $2 "+
			"WHERE id = $1",
		conversationId,
		time.Now().UTC(),
	)

	return err
}
