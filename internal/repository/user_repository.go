package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/mts/shared/models"
	"github.com/jmoiron/sqlx"
)

const selectUser = `SELECT user_id, username, password, email_address, phone_number FROM users`

// UserWriteRepository handles all state-mutating operations for users.
// It operates exclusively against the SQL write store (source of truth).
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts the user and sets its generated UserID.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (username, password, email_address, phone_number)
		VALUES (?, ?, ?, ?)
		RETURNING user_id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		user.Username, user.Password, user.EmailAddress, user.PhoneNumber,
	).Scan(&user.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID fetches the full write model for internal operations.
func (r *UserWriteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(selectUser+` WHERE user_id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserWriteRepository) Update(ctx context.Context, user *models.User) error {
	query := r.db.Rebind(`
		UPDATE users
		SET username = ?, password = ?, email_address = ?, phone_number = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Password, user.EmailAddress, user.PhoneNumber, user.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
