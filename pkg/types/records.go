package types

import (
	"time"

	"github.com/physiq/physiq-server/pkg/domain/anthropometry"
)

// Execution statuses for the audit trail.
const (
	StatusPending = "PENDING"
	StatusStarted = "STARTED"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// ExecutionRecord tracks one cloud-function invocation end to end.
type ExecutionRecord struct {
	ExecutionID  string    `firestore:"execution_id" json:"executionId"`
	Service      string    `firestore:"service" json:"service"`
	Status       string    `firestore:"status" json:"status"`
	StartTime    time.Time `firestore:"start_time" json:"startTime"`
	EndTime      time.Time `firestore:"end_time,omitempty" json:"endTime,omitempty"`
	UserID       string    `firestore:"user_id,omitempty" json:"userId,omitempty"`
	TriggerType  string    `firestore:"trigger_type,omitempty" json:"triggerType,omitempty"`
	InputsJSON   string    `firestore:"inputs_json,omitempty" json:"inputsJson,omitempty"`
	OutputsJSON  string    `firestore:"outputs_json,omitempty" json:"outputsJson,omitempty"`
	ErrorMessage string    `firestore:"error_message,omitempty" json:"errorMessage,omitempty"`
}

// MeasurementRecord is a stored measurement entry, keyed by its entry ID
// under the owning user.
type MeasurementRecord struct {
	ID         string                          `firestore:"id" json:"id"`
	UserID     string                          `firestore:"user_id" json:"userId"`
	RecordedAt time.Time                       `firestore:"recorded_at" json:"recordedAt"`
	Entry      *anthropometry.MeasurementEntry `firestore:"entry" json:"entry"`
}

// AnalysisRecord is a stored classification report for one measurement.
type AnalysisRecord struct {
	ID            string                `firestore:"id" json:"id"`
	UserID        string                `firestore:"user_id" json:"userId"`
	MeasurementID string                `firestore:"measurement_id" json:"measurementId"`
	CreatedAt     time.Time             `firestore:"created_at" json:"createdAt"`
	Report        *anthropometry.Report `firestore:"report" json:"report"`
}
