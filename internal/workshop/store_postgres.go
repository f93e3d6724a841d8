package workshop

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists workshops and registrations in PostgreSQL via pgx.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, w *Workshop) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO workshops
		   (id, mitra_id, title, description, venue_name,
		    geofence_lat, geofence_lon, geofence_radius_m,
		    starts_at, ends_at, capacity, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		w.ID, w.MitraID, w.Title, w.Description, w.VenueName,
		w.Geofence.Center.Lat, w.Geofence.Center.Lon, w.Geofence.RadiusM,
		w.StartsAt, w.EndsAt, w.Capacity, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert workshop: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Workshop, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, mitra_id, title, description, venue_name,
		        geofence_lat, geofence_lon, geofence_radius_m,
		        starts_at, ends_at, capacity, created_at
		 FROM workshops WHERE id = $1`, id)

	var w Workshop
	err := row.Scan(&w.ID, &w.MitraID, &w.Title, &w.Description, &w.VenueName,
		&w.Geofence.Center.Lat, &w.Geofence.Center.Lon, &w.Geofence.RadiusM,
		&w.StartsAt, &w.EndsAt, &w.Capacity, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workshop: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Workshop, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, mitra_id, title, description, venue_name,
		        geofence_lat, geofence_lon, geofence_radius_m,
		        starts_at, ends_at, capacity, created_at
		 FROM workshops ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	defer rows.Close()

	var out []*Workshop
	for rows.Next() {
		var w Workshop
		if err := rows.Scan(&w.ID, &w.MitraID, &w.Title, &w.Description, &w.VenueName,
			&w.Geofence.Center.Lat, &w.Geofence.Center.Lon, &w.Geofence.RadiusM,
			&w.StartsAt, &w.EndsAt, &w.Capacity, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan workshop: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// Register inserts the registration inside a transaction that locks the
// workshop row, so capacity cannot be oversold by concurrent requests.
func (s *PostgresStore) Register(ctx context.Context, reg *Registration) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin register tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var capacity, registered int
	err = tx.QueryRow(ctx,
		`SELECT w.capacity,
		        (SELECT COUNT(*) FROM registrations r WHERE r.workshop_id = w.id)
		 FROM workshops w WHERE w.id = $1 FOR UPDATE`,
		reg.WorkshopID).Scan(&capacity, &registered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock workshop: %w", err)
	}
	if capacity > 0 && registered >= capacity {
		return ErrWorkshopFull
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, workshop_id, talenta_id, registered_at)
		 VALUES ($1, $2, $3, $4)`,
		reg.ID, reg.WorkshopID, reg.TalentaID, reg.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) ListRegistrants(ctx context.Context, workshopID string) ([]*Registration, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.workshop_id, r.talenta_id, COALESCE(a.name, ''), r.registered_at
		 FROM registrations r
		 LEFT JOIN accounts a ON a.id = r.talenta_id
		 WHERE r.workshop_id = $1
		 ORDER BY r.registered_at`, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list registrants: %w", err)
	}
	defer rows.Close()

	var out []*Registration
	for rows.Next() {
		var r Registration
		if err := rows.Scan(&r.ID, &r.WorkshopID, &r.TalentaID, &r.TalentaName, &r.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) IsRegistered(ctx context.Context, workshopID, talentaID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE workshop_id = $1 AND talenta_id = $2)`,
		workshopID, talentaID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}
