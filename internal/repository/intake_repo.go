package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/saeid-a/CoachIntake/internal/models"
)

type IntakeRepository struct {
	db DBTX
}

func NewIntakeRepository(db DBTX) *IntakeRepository {
	return &IntakeRepository{db: db}
}

func (r *IntakeRepository) Create(ctx context.Context, message *models.IntakeMessage) error {
	query := `
		INSERT INTO intake_messages (user_id, session_id, content, parsed, missing, ready)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	missing := message.Missing
	if missing == nil {
		missing = []string{}
	}
	return r.db.QueryRow(ctx, query,
		message.UserID,
		message.SessionID,
		message.Content,
		message.Parsed,
		missing,
		message.Ready,
	).Scan(&message.ID, &message.CreatedAt)
}

// LockSession serializes writers of one session until the surrounding
// transaction ends. Outside a transaction the lock is released immediately.
func (r *IntakeRepository) LockSession(ctx context.Context, userID int64, sessionID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($2, $1))`, userID, sessionID.String())
	return err
}

// LatestBySession returns pgx.ErrNoRows when the user has no message in the
// session. It orders by id since created_at is the transaction start time and
// writers holding LockSession insert in id order.
func (r *IntakeRepository) LatestBySession(ctx context.Context, userID int64, sessionID uuid.UUID) (*models.IntakeMessage, error) {
	query := `
		SELECT id, user_id, session_id, content, parsed, missing, ready, created_at
		FROM intake_messages
		WHERE user_id = $1 AND session_id = $2
		ORDER BY id DESC
		LIMIT 1
	`
	var message models.IntakeMessage
	err := r.db.QueryRow(ctx, query, userID, sessionID).Scan(
		&message.ID,
		&message.UserID,
		&message.SessionID,
		&message.Content,
		&message.Parsed,
		&message.Missing,
		&message.Ready,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *IntakeRepository) ListBySession(
	ctx context.Context,
	userID int64,
	sessionID uuid.UUID,
	limit int,
	offset int,
) ([]models.IntakeMessage, int, error) {
	totalQuery := `
		SELECT COUNT(*)
		FROM intake_messages
		WHERE user_id = $1 AND session_id = $2
	`

	var total int
	if err := r.db.QueryRow(ctx, totalQuery, userID, sessionID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, session_id, content, parsed, missing, ready, created_at
		FROM intake_messages
		WHERE user_id = $1 AND session_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, userID, sessionID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := make([]models.IntakeMessage, 0)
	for rows.Next() {
		var message models.IntakeMessage
		if err := rows.Scan(
			&message.ID,
			&message.UserID,
			&message.SessionID,
			&message.Content,
			&message.Parsed,
			&message.Missing,
			&message.Ready,
			&message.CreatedAt,
		); err != nil {
			return nil, 0, err
		}

		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
