package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"carmarket/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrSessionMissing = errors.New("session not found")
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()

	query := `
		INSERT INTO users (id, email, full_name, phone, location, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Email, u.FullName, u.Phone, u.Location, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT id, email, full_name, phone, location, password_hash, created_at
		FROM users WHERE email = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Location, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	query := `
		SELECT id, email, full_name, phone, location, password_hash, created_at
		FROM users WHERE id = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Location, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) CreateSession(ctx context.Context, s models.Session) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`
	_, err := r.DB.ExecContext(ctx, query, s.UserID, s.RefreshToken, s.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `SELECT user_id, refresh_token, expires_at FROM sessions WHERE refresh_token = ?`
	var s models.Session
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(&s.UserID, &s.RefreshToken, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return models.Session{}, ErrSessionMissing
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}
