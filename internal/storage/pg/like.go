package pg

import (
	"fmt"

	"github.com/waypost-dev/waypost/internal/domain"
)

// ToggleLike flips the (user, target) like atomically: insert-if-absent,
// otherwise delete. The primary key on likes serializes concurrent
// toggles for the same pair, so a conflicting insert degrades into the
// delete branch instead of a duplicate row.
func (s *Storage) ToggleLike(user domain.UserId, target domain.LikeTarget) (domain.LikeState, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
        INSERT INTO likes (user_id, target_kind, target_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, target_kind, target_id) DO NOTHING
    `, user, target.Kind, target.Id)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to insert like: %w", err)
	}
	inserted, _ := result.RowsAffected()

	if inserted == 0 {
		if _, err := tx.Exec(`
            DELETE FROM likes
            WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
        `, user, target.Kind, target.Id); err != nil {
			return domain.LikeState{}, fmt.Errorf("failed to delete like: %w", err)
		}
	}

	// count is always a projection of the rows, never a stored counter
	var count int
	err = tx.QueryRow(`
        SELECT COUNT(*) FROM likes WHERE target_kind = $1 AND target_id = $2
    `, target.Kind, target.Id).Scan(&count)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return domain.LikeState{Liked: inserted == 1, Count: count}, nil
}

func (s *Storage) LikeState(user *domain.UserId, target domain.LikeTarget) (domain.LikeState, error) {
	var state domain.LikeState
	err := s.db.QueryRow(`
        SELECT COUNT(*) FROM likes WHERE target_kind = $1 AND target_id = $2
    `, target.Kind, target.Id).Scan(&state.Count)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to count likes: %w", err)
	}
	if user != nil {
		err = s.db.QueryRow(`
            SELECT EXISTS (
                SELECT 1 FROM likes
                WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
            )
        `, *user, target.Kind, target.Id).Scan(&state.Liked)
		if err != nil {
			return domain.LikeState{}, fmt.Errorf("failed to check like: %w", err)
		}
	}
	return state, nil
}
