package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
)

func (s *Storage) GetUser(id domain.UserId) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
        SELECT id, username, email, moderator
        FROM users
        WHERE id = $1
    `, id).Scan(&user.Id, &user.Username, &user.Email, &user.Moderator)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{
				Message:    "User not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// UsersByUsernames resolves mention candidates with an exact,
// case-sensitive match. Unknown names are simply absent from the result.
func (s *Storage) UsersByUsernames(names []domain.Username) ([]domain.User, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`
        SELECT id, username, email, moderator
        FROM users
        WHERE username = ANY($1)
    `, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by usernames: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.Id, &user.Username, &user.Email, &user.Moderator); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
