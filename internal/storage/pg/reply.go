package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
)

// CreateReply inserts the reply and bumps the parent thread's
// last_activity_at in the same transaction. New replies are activity,
// edits are not.
func (s *Storage) CreateReply(data domain.ReplyCreationData) (domain.Reply, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
        UPDATE threads SET last_activity_at = NOW() WHERE id = $1
    `, data.ThreadId)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to bump thread activity: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.Reply{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}

	reply := domain.Reply{
		ThreadId: data.ThreadId,
		Body:     data.Body,
		Author:   data.Author,
	}
	err = tx.QueryRow(`
        INSERT INTO replies (thread_id, body, author_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `, data.ThreadId, data.Body, data.Author.Id).Scan(&reply.Id, &reply.CreatedAt)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to insert reply: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Reply{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return reply, nil
}

func (s *Storage) GetReply(id domain.ReplyId) (domain.Reply, error) {
	var reply domain.Reply
	err := s.db.QueryRow(`
        SELECT r.id, r.thread_id, r.body, r.created_at,
               u.id, u.username, u.email, u.moderator
        FROM replies r
        JOIN users u ON u.id = r.author_id
        WHERE r.id = $1
    `, id).Scan(
		&reply.Id, &reply.ThreadId, &reply.Body, &reply.CreatedAt,
		&reply.Author.Id, &reply.Author.Username, &reply.Author.Email, &reply.Author.Moderator,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Reply not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Reply{}, fmt.Errorf("failed to fetch reply: %w", err)
	}
	return reply, nil
}

func (s *Storage) DeleteReply(id domain.ReplyId) error {
	// threads.solution_reply_id clears via ON DELETE SET NULL
	result, err := s.db.Exec(`DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Reply not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
