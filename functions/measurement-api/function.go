// Package measurementapi is the HTTP ingestion surface. It accepts raw
// measurement submissions, normalizes keys and units, persists the entry
// and emits a measurement-recorded event for the analyzer.
package measurementapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/google/uuid"

	shared "github.com/physiq/physiq-server/pkg"
	"github.com/physiq/physiq-server/pkg/bootstrap"
	"github.com/physiq/physiq-server/pkg/domain/anthropometry"
	infrapubsub "github.com/physiq/physiq-server/pkg/infrastructure/pubsub"
	"github.com/physiq/physiq-server/pkg/types"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("IngestMeasurement", IngestMeasurement)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
		if svcErr != nil {
			slog.Error("Failed to initialize service", "error", svcErr)
		}
	})
	return svc, svcErr
}

// ingestRequest is the wire format of a measurement submission. Values
// arrive in whatever unit the client captured them in.
type ingestRequest struct {
	UserID     string    `json:"userId"`
	RecordedAt time.Time `json:"recordedAt,omitempty"`
	Profile    struct {
		Gender string `json:"gender,omitempty"`
		Age    int    `json:"age,omitempty"`
	} `json:"profile"`
	Height       *anthropometry.RawMeasurement           `json:"height,omitempty"`
	Weight       *anthropometry.RawMeasurement           `json:"weight,omitempty"`
	Measurements map[string]anthropometry.RawMeasurement `json:"measurements,omitempty"`
	Advanced     *anthropometry.Advanced                 `json:"advanced,omitempty"`
	Survey       *anthropometry.Survey                   `json:"survey,omitempty"`
}

type ingestResponse struct {
	MeasurementID string                `json:"measurementId"`
	Warnings      []string              `json:"warnings,omitempty"`
	Report        *anthropometry.Report `json:"report,omitempty"`
}

// IngestMeasurement is the entry point
func IngestMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	svc, err := initService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		http.Error(w, fmt.Sprintf("service init failed: %v", err), http.StatusInternalServerError)
		return
	}

	if !authorized(ctx, svc, r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		// fall through to ingestion below
	case http.MethodGet:
		handleGet(ctx, svc, w, r)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	entry, warnings, err := buildEntry(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record := &types.MeasurementRecord{
		ID:         entry.ID,
		UserID:     req.UserID,
		RecordedAt: entry.RecordedAt,
		Entry:      entry,
	}
	if err := svc.DB.SetMeasurement(ctx, record); err != nil {
		slog.Error("Failed to persist measurement", "user_id", req.UserID, "error", err)
		http.Error(w, "failed to persist measurement", http.StatusInternalServerError)
		return
	}

	resp := ingestResponse{
		MeasurementID: entry.ID,
		Warnings:      warnings,
	}

	// sync=true runs the engine inline and skips the event fan-out. Useful
	// for interactive clients that want the report in the same round trip.
	if r.URL.Query().Get("sync") == "true" {
		resp.Report = anthropometry.Classify(entry)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	recorded := types.MeasurementRecordedEvent{
		UserID:        req.UserID,
		MeasurementID: entry.ID,
	}
	outEvent, err := infrapubsub.NewCloudEvent("/measurement-api", shared.EventTypeMeasurementRecorded, recorded)
	if err != nil {
		slog.Error("Failed to create recorded event", "error", err)
		http.Error(w, "failed to create event", http.StatusInternalServerError)
		return
	}
	msgID, err := svc.Pub.PublishCloudEvent(ctx, shared.TopicMeasurementRecorded, outEvent)
	if err != nil {
		slog.Error("Failed to publish recorded event", "error", err)
		http.Error(w, "failed to publish event", http.StatusInternalServerError)
		return
	}

	slog.Info("Measurement ingested",
		"user_id", req.UserID,
		"measurement_id", entry.ID,
		"warnings", len(warnings),
		"message_id", msgID)

	writeJSON(w, http.StatusAccepted, resp)
}

// handleGet serves measurement history and stored analysis reports.
func handleGet(ctx context.Context, svc *bootstrap.Service, w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	if analysisID := r.URL.Query().Get("analysisId"); analysisID != "" {
		record, err := svc.DB.GetAnalysis(ctx, userID, analysisID)
		if err != nil {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
		return
	}

	records, err := svc.DB.ListMeasurements(ctx, userID)
	if err != nil {
		slog.Error("Failed to list measurements", "user_id", userID, "error", err)
		http.Error(w, "failed to list measurements", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// authorized checks the shared ingest token. An empty stored token means
// auth is disabled (local development).
func authorized(ctx context.Context, svc *bootstrap.Service, r *http.Request) bool {
	expected, err := svc.Secrets.GetSecret(ctx, svc.Config.ProjectID, shared.SecretIngestToken)
	if err != nil {
		slog.Error("Failed to load ingest token", "error", err)
		return false
	}
	if expected == "" {
		return true
	}
	return r.Header.Get("X-Api-Token") == expected
}

// buildEntry converts the wire request into a canonical MeasurementEntry.
func buildEntry(req *ingestRequest) (*anthropometry.MeasurementEntry, []string, error) {
	recordedAt := req.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	entry := &anthropometry.MeasurementEntry{
		ID:         uuid.NewString(),
		RecordedAt: recordedAt,
		Profile: anthropometry.Profile{
			Gender: anthropometry.ParseGender(req.Profile.Gender),
			Age:    req.Profile.Age,
		},
		Advanced: req.Advanced,
		Survey:   req.Survey,
	}

	if req.Height != nil {
		cm, err := anthropometry.ToCentimetres(req.Height.Value, req.Height.Unit)
		if err != nil {
			return nil, nil, fmt.Errorf("height: %v", err)
		}
		entry.BodyStats.HeightCm = cm
	}
	if req.Weight != nil {
		kg, err := anthropometry.ToKilograms(req.Weight.Value, req.Weight.Unit)
		if err != nil {
			return nil, nil, fmt.Errorf("weight: %v", err)
		}
		entry.BodyStats.WeightKg = kg
	}

	measurements, warnings := anthropometry.NormalizeMeasurements(req.Measurements)
	entry.Measurements = measurements

	return entry, warnings, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
