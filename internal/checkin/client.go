package checkin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	dErrors "vokasia/pkg/domain-errors"
)

// APIRecorder submits attendance to the platform API. It is the production
// Recorder behind a Flow running on a registrant's device.
type APIRecorder struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

// NewAPIRecorder builds a recorder for the API at baseURL, authenticated with
// the registrant's access token. A nil client gets a 15 second default.
func NewAPIRecorder(baseURL, accessToken string, client *http.Client) *APIRecorder {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &APIRecorder{baseURL: baseURL, accessToken: accessToken, client: client}
}

type submitPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Pass      string  `json:"pass"`
	SessionID string  `json:"session_id,omitempty"`
}

type submitEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors"`
}

// Record posts the submission and rebuilds the server's coded error from the
// envelope so the flow can surface its message verbatim.
func (r *APIRecorder) Record(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(submitPayload{
		Latitude:  sub.Point.Lat,
		Longitude: sub.Point.Lon,
		Pass:      sub.Pass,
		SessionID: sub.SessionID,
	})
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	endpoint := fmt.Sprintf("%s/talenta/workshops/%s/attendance",
		r.baseURL, url.PathEscape(sub.WorkshopID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.accessToken)

	resp, err := r.client.Do(req)
	if err != nil {
		return dErrors.New(dErrors.CodeUnavailable, "attendance service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return nil
	}

	var env submitEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Message == "" {
		return dErrors.New(dErrors.FromHTTPStatus(resp.StatusCode),
			fmt.Sprintf("submission rejected with status %d", resp.StatusCode))
	}

	code := dErrors.FromHTTPStatus(resp.StatusCode)
	if resp.StatusCode == http.StatusUnprocessableEntity {
		if _, ok := env.Errors["distance_m"]; ok {
			code = dErrors.CodeGeofenceViolation
		}
	}
	de := dErrors.New(code, env.Message)
	for k, v := range env.Errors {
		de = de.WithField(k, v)
	}
	return de
}
