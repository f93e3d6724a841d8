//go:build integration

package containers

import "testing"

// Schema is the full DDL used by store integration tests. Kept here so every
// suite runs against the same table shapes.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL DEFAULT '',
	type          TEXT NOT NULL,
	password_hash BYTEA NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS workshops (
	id                TEXT PRIMARY KEY,
	mitra_id          TEXT NOT NULL,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	venue_name        TEXT NOT NULL DEFAULT '',
	geofence_lat      DOUBLE PRECISION NOT NULL,
	geofence_lon      DOUBLE PRECISION NOT NULL,
	geofence_radius_m DOUBLE PRECISION NOT NULL,
	starts_at         TIMESTAMPTZ NOT NULL,
	ends_at           TIMESTAMPTZ NOT NULL,
	capacity          INTEGER NOT NULL DEFAULT 0,
	created_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS registrations (
	id            TEXT PRIMARY KEY,
	workshop_id   TEXT NOT NULL,
	talenta_id    TEXT NOT NULL,
	registered_at TIMESTAMPTZ NOT NULL,
	UNIQUE (workshop_id, talenta_id)
);

CREATE TABLE IF NOT EXISTS attendance_records (
	id          TEXT PRIMARY KEY,
	workshop_id TEXT NOT NULL,
	session_id  TEXT NOT NULL,
	talenta_id  TEXT NOT NULL,
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL,
	distance_m  DOUBLE PRECISION NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL,
	UNIQUE (workshop_id, session_id, talenta_id)
);

CREATE TABLE IF NOT EXISTS certificates (
	id            TEXT PRIMARY KEY,
	workshop_id   TEXT NOT NULL,
	talenta_id    TEXT NOT NULL,
	serial_number TEXT NOT NULL,
	issued_at     TIMESTAMPTZ NOT NULL,
	UNIQUE (workshop_id, talenta_id)
);
`

// NewMigratedPostgres starts a container and applies the schema.
func NewMigratedPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	pc := NewPostgresContainer(t)
	pc.Exec(t, Schema)
	return pc
}
