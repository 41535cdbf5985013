package mocks

import (
	"context"
	"fmt"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/physiq/physiq-server/pkg/types"
)

// --- Mock Database ---
type MockDatabase struct {
	SetExecutionFunc    func(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecutionFunc func(ctx context.Context, id string, data map[string]interface{}) error

	GetMeasurementFunc   func(ctx context.Context, userID, id string) (*types.MeasurementRecord, error)
	SetMeasurementFunc   func(ctx context.Context, record *types.MeasurementRecord) error
	ListMeasurementsFunc func(ctx context.Context, userID string) ([]*types.MeasurementRecord, error)

	GetAnalysisFunc func(ctx context.Context, userID, id string) (*types.AnalysisRecord, error)
	SetAnalysisFunc func(ctx context.Context, record *types.AnalysisRecord) error
}

func (m *MockDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if m.SetExecutionFunc != nil {
		return m.SetExecutionFunc(ctx, record)
	}
	return nil
}

func (m *MockDatabase) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateExecutionFunc != nil {
		return m.UpdateExecutionFunc(ctx, id, data)
	}
	return nil
}

func (m *MockDatabase) GetMeasurement(ctx context.Context, userID, id string) (*types.MeasurementRecord, error) {
	if m.GetMeasurementFunc != nil {
		return m.GetMeasurementFunc(ctx, userID, id)
	}
	return nil, fmt.Errorf("measurement not found")
}

func (m *MockDatabase) SetMeasurement(ctx context.Context, record *types.MeasurementRecord) error {
	if m.SetMeasurementFunc != nil {
		return m.SetMeasurementFunc(ctx, record)
	}
	return nil
}

func (m *MockDatabase) ListMeasurements(ctx context.Context, userID string) ([]*types.MeasurementRecord, error) {
	if m.ListMeasurementsFunc != nil {
		return m.ListMeasurementsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDatabase) GetAnalysis(ctx context.Context, userID, id string) (*types.AnalysisRecord, error) {
	if m.GetAnalysisFunc != nil {
		return m.GetAnalysisFunc(ctx, userID, id)
	}
	return nil, fmt.Errorf("analysis not found")
}

func (m *MockDatabase) SetAnalysis(ctx context.Context, record *types.AnalysisRecord) error {
	if m.SetAnalysisFunc != nil {
		return m.SetAnalysisFunc(ctx, record)
	}
	return nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}

func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return []byte("mock-data"), nil
}

// --- Mock Secrets ---
type MockSecretStore struct {
	GetSecretFunc func(ctx context.Context, projectID, name string) (string, error)
}

func (m *MockSecretStore) GetSecret(ctx context.Context, projectID, name string) (string, error) {
	if m.GetSecretFunc != nil {
		return m.GetSecretFunc(ctx, projectID, name)
	}
	return "mock-secret-value", nil
}
