package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils"
	"github.com/jmoiron/sqlx"
)

// CredentialRepository persists the one active session across restarts.
// Load returns (nil, nil) when nothing is stored.
type CredentialRepository interface {
	Save(ctx context.Context, session *models.Session) error
	Load(ctx context.Context) (*models.Session, error)
	Delete(ctx context.Context) error
}

type credentialRow struct {
	Profile   string `db:"profile"`
	Token     string `db:"token"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	IsAdmin   bool   `db:"is_admin"`
	CreatedAt int64  `db:"created_at"`
}

type sqliteCredentialRepository struct {
	DB      *sqlx.DB
	profile string
}

func NewSQLiteCredentialRepo(db *sqlx.DB, profile string) CredentialRepository {
	return &sqliteCredentialRepository{DB: db, profile: profile}
}

func (r *sqliteCredentialRepository) Save(ctx context.Context, session *models.Session) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	row := credentialRow{
		Profile:   r.profile,
		Token:     session.Token,
		UserID:    session.User.ID.String(),
		Name:      session.User.Name,
		Email:     session.User.Email,
		IsAdmin:   session.User.IsAdmin,
		CreatedAt: session.CreatedAt.Unix(),
	}

	query := `
		INSERT INTO credentials (profile, token, user_id, name, email, is_admin, created_at)
		VALUES (:profile, :token, :user_id, :name, :email, :is_admin, :created_at)
		ON CONFLICT(profile) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			name = excluded.name,
			email = excluded.email,
			is_admin = excluded.is_admin,
			created_at = excluded.created_at
	`

	if _, err := r.DB.NamedExecContext(dbCtx, query, row); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

func (r *sqliteCredentialRepository) Load(ctx context.Context) (*models.Session, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	query := `
		SELECT profile, token, user_id, name, email, is_admin, created_at
		FROM credentials
		WHERE profile = ?
	`

	var row credentialRow

	if err := r.DB.GetContext(dbCtx, &row, query, r.profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying credentials: %w", err)
	}

	return &models.Session{
		User: models.User{
			ID:      models.ID(row.UserID),
			Name:    row.Name,
			Email:   row.Email,
			IsAdmin: row.IsAdmin,
		},
		Token:     row.Token,
		CreatedAt: time.Unix(row.CreatedAt, 0),
	}, nil
}

func (r *sqliteCredentialRepository) Delete(ctx context.Context) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM credentials WHERE profile = ?`, r.profile); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}
