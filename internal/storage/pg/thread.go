package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
)

// CreateThread inserts the thread plus its tag set in one transaction and
// recounts the author's rolling window before committing. The advisory
// lock serializes concurrent creates per author; without it two inserts
// under READ COMMITTED would each count committed rows plus their own and
// both slip under the cap. Whichever insert pushes the author over the
// cap rolls itself back.
func (s *Storage) CreateThread(data domain.ThreadCreationData) (domain.Thread, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// held until commit/rollback, keyed by author
	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1)`, data.Author.Id); err != nil {
		return domain.Thread{}, fmt.Errorf("failed to lock author: %w", err)
	}

	thread := domain.Thread{
		Subject: data.Subject,
		Body:    data.Body,
		Slug:    data.Slug,
		Author:  data.Author,
		Tags:    data.Tags,
	}
	err = tx.QueryRow(`
        INSERT INTO threads (subject, body, slug, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, last_activity_at
    `, data.Subject, data.Body, data.Slug, data.Author.Id).Scan(
		&thread.Id, &thread.CreatedAt, &thread.LastActivityAt,
	)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to insert thread: %w", err)
	}

	var count int
	err = tx.QueryRow(`
        SELECT COUNT(*) FROM threads
        WHERE author_id = $1 AND created_at > NOW() - INTERVAL '24 hours'
    `, data.Author.Id).Scan(&count)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to recount author threads: %w", err)
	}
	if count > s.cfg.Public.ThreadDailyLimit {
		return domain.Thread{}, internal_errors.RateLimited(
			fmt.Sprintf("You can only create %d threads per day", s.cfg.Public.ThreadDailyLimit))
	}

	for _, tag := range data.Tags {
		if _, err := tx.Exec(`
            INSERT INTO thread_tags (thread_id, tag_id)
            VALUES ($1, $2)
            ON CONFLICT DO NOTHING
        `, thread.Id, tag); err != nil {
			return domain.Thread{}, fmt.Errorf("failed to associate tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Thread{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return thread, nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	var solution sql.NullInt64
	err := s.db.QueryRow(`
        SELECT t.id, t.subject, t.body, t.slug, t.solution_reply_id,
               t.created_at, t.last_activity_at,
               u.id, u.username, u.email, u.moderator
        FROM threads t
        JOIN users u ON u.id = t.author_id
        WHERE t.id = $1
    `, id).Scan(
		&thread.Id, &thread.Subject, &thread.Body, &thread.Slug, &solution,
		&thread.CreatedAt, &thread.LastActivityAt,
		&thread.Author.Id, &thread.Author.Username, &thread.Author.Email, &thread.Author.Moderator,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	if solution.Valid {
		replyId := domain.ReplyId(solution.Int64)
		thread.SolutionReplyId = &replyId
	}

	rows, err := s.db.Query(`SELECT tag_id FROM thread_tags WHERE thread_id = $1 ORDER BY tag_id`, id)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to fetch thread tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag domain.TagId
		if err := rows.Scan(&tag); err != nil {
			return domain.Thread{}, fmt.Errorf("failed to scan tag: %w", err)
		}
		thread.Tags = append(thread.Tags, tag)
	}
	return thread, rows.Err()
}

// UpdateThread rewrites subject, body and tags. Author, created_at and
// last_activity_at are deliberately not touched: edits are not activity.
func (s *Storage) UpdateThread(id domain.ThreadId, data domain.ThreadUpdateData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
        UPDATE threads SET subject = $2, body = $3
        WHERE id = $1
    `, id, data.Subject, data.Body)
	if err != nil {
		return fmt.Errorf("failed to update thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}

	if _, err := tx.Exec(`DELETE FROM thread_tags WHERE thread_id = $1 AND NOT (tag_id = ANY($2))`,
		id, pq.Array(data.Tags)); err != nil {
		return fmt.Errorf("failed to prune tags: %w", err)
	}
	for _, tag := range data.Tags {
		if _, err := tx.Exec(`
            INSERT INTO thread_tags (thread_id, tag_id)
            VALUES ($1, $2)
            ON CONFLICT DO NOTHING
        `, id, tag); err != nil {
			return fmt.Errorf("failed to associate tag: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Storage) DeleteThread(id domain.ThreadId) error {
	// replies, tags and likes cascade via foreign keys
	result, err := s.db.Exec(`DELETE FROM threads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

func (s *Storage) ThreadCountSince(author domain.UserId, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
        SELECT COUNT(*) FROM threads
        WHERE author_id = $1 AND created_at >= $2
    `, author, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author threads: %w", err)
	}
	return count, nil
}

// SetSolution only succeeds when the reply actually belongs to the thread;
// the guard keeps the invariant even if a caller skips the service check.
func (s *Storage) SetSolution(threadId domain.ThreadId, replyId domain.ReplyId) error {
	result, err := s.db.Exec(`
        UPDATE threads SET solution_reply_id = $2
        WHERE id = $1
          AND EXISTS (SELECT 1 FROM replies WHERE id = $2 AND thread_id = $1)
    `, threadId, replyId)
	if err != nil {
		return fmt.Errorf("failed to set solution: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Reply does not belong to this thread",
			StatusCode: http.StatusUnprocessableEntity,
		}
	}
	return nil
}

func (s *Storage) ClearSolution(threadId domain.ThreadId) error {
	result, err := s.db.Exec(`UPDATE threads SET solution_reply_id = NULL WHERE id = $1`, threadId)
	if err != nil {
		return fmt.Errorf("failed to clear solution: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
