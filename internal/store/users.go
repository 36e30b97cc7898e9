package store

import (
	"context"

	"musicstream/internal/models"
)

// CountUsers returns the number of persisted users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, wrapErr("count users", err)
	}
	return count, nil
}

// CreateUser inserts a user and returns it with its assigned id.
func (q *Queries) CreateUser(ctx context.Context, name string, age int) (models.User, error) {
	user := models.User{Name: name, Age: age}
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO users (name, age)
		VALUES ($1, $2)
		RETURNING id
	`, name, age).Scan(&user.ID)
	if err != nil {
		return models.User{}, wrapErr("insert user", err)
	}
	return user, nil
}

// ListUsers returns every user ordered by id.
func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, age
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Age); err != nil {
			return nil, wrapErr("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate users", err)
	}
	return users, nil
}
