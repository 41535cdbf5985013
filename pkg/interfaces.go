package shared

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/physiq/physiq-server/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	// Execution audit trail
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error

	// Measurements
	GetMeasurement(ctx context.Context, userID, id string) (*types.MeasurementRecord, error)
	SetMeasurement(ctx context.Context, record *types.MeasurementRecord) error
	ListMeasurements(ctx context.Context, userID string) ([]*types.MeasurementRecord, error)

	// Analyses
	GetAnalysis(ctx context.Context, userID, id string) (*types.AnalysisRecord, error)
	SetAnalysis(ctx context.Context, record *types.AnalysisRecord) error
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Secrets Interface ---

type SecretStore interface {
	GetSecret(ctx context.Context, projectID, name string) (string, error)
}
