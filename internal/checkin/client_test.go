package checkin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vokasia/internal/geo"
	dErrors "vokasia/pkg/domain-errors"
)

func TestAPIRecorderSubmits(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody submitPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	rec := NewAPIRecorder(srv.URL, "token-abc", srv.Client())
	err := rec.Record(context.Background(), Submission{
		WorkshopID: "ws-1",
		SessionID:  "main",
		TalentaID:  "tal-1",
		Point:      geo.Point{Lat: -6.2088, Lon: 106.8456},
		Pass:       "pass-token",
	})
	require.NoError(t, err)

	assert.Equal(t, "/talenta/workshops/ws-1/attendance", gotPath)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "pass-token", gotBody.Pass)
	assert.Equal(t, "main", gotBody.SessionID)
	assert.InDelta(t, -6.2088, gotBody.Latitude, 1e-9)
}

func TestAPIRecorderRebuildsCodedErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "you are 978 m from the venue, move 878 m closer",
			"errors":  map[string]any{"distance_m": 978.0, "radius_m": 100.0},
		})
	}))
	defer srv.Close()

	rec := NewAPIRecorder(srv.URL, "token-abc", srv.Client())
	err := rec.Record(context.Background(), Submission{WorkshopID: "ws-1", Pass: "p"})

	require.Error(t, err)
	assert.Equal(t, dErrors.CodeGeofenceViolation, dErrors.CodeOf(err))

	var de *dErrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "you are 978 m from the venue, move 878 m closer", de.Message)
	assert.Equal(t, 978.0, de.Fields["distance_m"])
}

func TestAPIRecorderUnreachableServer(t *testing.T) {
	rec := NewAPIRecorder("http://127.0.0.1:1", "token", nil)
	err := rec.Record(context.Background(), Submission{WorkshopID: "ws-1", Pass: "p"})

	assert.Equal(t, dErrors.CodeUnavailable, dErrors.CodeOf(err))
}

func TestAPIRecorderPlainFailureBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	rec := NewAPIRecorder(srv.URL, "token", srv.Client())
	err := rec.Record(context.Background(), Submission{WorkshopID: "ws-1", Pass: "p"})

	assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))
}
