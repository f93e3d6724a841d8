package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists attendance records in PostgreSQL via pgx. The table
// carries a unique index on (workshop_id, session_id, talenta_id) which backs
// the write-once rule.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, rec *Record) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO attendance_records
		   (id, workshop_id, session_id, talenta_id, latitude, longitude, distance_m, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.WorkshopID, rec.SessionID, rec.TalentaID,
		rec.Point.Lat, rec.Point.Lon, rec.DistanceM, rec.RecordedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyRecorded
		}
		return fmt.Errorf("insert attendance record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBySession(ctx context.Context, workshopID, sessionID string) ([]*Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, workshop_id, session_id, talenta_id, latitude, longitude, distance_m, recorded_at
		 FROM attendance_records
		 WHERE workshop_id = $1 AND session_id = $2
		 ORDER BY recorded_at`, workshopID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.WorkshopID, &r.SessionID, &r.TalentaID,
			&r.Point.Lat, &r.Point.Lon, &r.DistanceM, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) HasAttended(ctx context.Context, workshopID, talentaID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendance_records WHERE workshop_id = $1 AND talenta_id = $2)`,
		workshopID, talentaID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return exists, nil
}
