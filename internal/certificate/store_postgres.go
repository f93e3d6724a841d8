package certificate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists certificates in PostgreSQL via pgx. A unique index
// on (workshop_id, talenta_id) backs the one-certificate rule.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *Certificate) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO certificates (id, workshop_id, talenta_id, serial_number, issued_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.WorkshopID, c.TalentaID, c.SerialNumber, c.IssuedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyIssued
		}
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, workshopID, talentaID string) (*Certificate, error) {
	var c Certificate
	err := s.db.QueryRow(ctx,
		`SELECT id, workshop_id, talenta_id, serial_number, issued_at
		 FROM certificates WHERE workshop_id = $1 AND talenta_id = $2`,
		workshopID, talentaID).
		Scan(&c.ID, &c.WorkshopID, &c.TalentaID, &c.SerialNumber, &c.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListByWorkshop(ctx context.Context, workshopID string) ([]*Certificate, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, workshop_id, talenta_id, serial_number, issued_at
		 FROM certificates WHERE workshop_id = $1 ORDER BY issued_at`,
		workshopID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	var out []*Certificate
	for rows.Next() {
		var c Certificate
		if err := rows.Scan(&c.ID, &c.WorkshopID, &c.TalentaID, &c.SerialNumber, &c.IssuedAt); err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
