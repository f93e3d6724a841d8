package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists accounts in PostgreSQL via pgx.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, a *Account) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO accounts (id, email, name, type, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, strings.ToLower(a.Email), a.Name, a.Type, a.PasswordHash, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.get(ctx, `SELECT id, email, name, type, password_hash, created_at
		 FROM accounts WHERE email = $1`, strings.ToLower(email))
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Account, error) {
	return s.get(ctx, `SELECT id, email, name, type, password_hash, created_at
		 FROM accounts WHERE id = $1`, id)
}

func (s *PostgresStore) get(ctx context.Context, query string, arg any) (*Account, error) {
	var a Account
	err := s.db.QueryRow(ctx, query, arg).
		Scan(&a.ID, &a.Email, &a.Name, &a.Type, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}
