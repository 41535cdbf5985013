package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/physiq/physiq-server/pkg/bootstrap"
	"github.com/physiq/physiq-server/pkg/testing/mocks"
	"github.com/physiq/physiq-server/pkg/types"
)

func TestWrapCloudEvent(t *testing.T) {
	statuses := []string{}
	mockDB := &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			statuses = append(statuses, record.Status)
			return nil
		},
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			if status, ok := data["status"].(string); ok {
				statuses = append(statuses, status)
			}
			return nil
		},
	}

	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		if fwCtx.Service != svc {
			t.Error("Service not injected correctly")
		}
		if fwCtx.ExecutionID == "" {
			t.Error("ExecutionID not generated")
		}
		return "ok", nil
	}

	wrapped := WrapCloudEvent("test-service", svc, handler)

	e := event.New()
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("test-source")

	if err := wrapped(context.Background(), e); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	if len(statuses) != 2 || statuses[0] != types.StatusPending || statuses[1] != types.StatusSuccess {
		t.Errorf("expected PENDING then SUCCESS, got %v", statuses)
	}
}

func TestWrapCloudEvent_Failure(t *testing.T) {
	var lastStatus string
	var errorMessage string
	mockDB := &mocks.MockDatabase{
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			if status, ok := data["status"].(string); ok {
				lastStatus = status
			}
			if msg, ok := data["error_message"].(string); ok {
				errorMessage = msg
			}
			return nil
		},
	}

	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		return nil, errors.New("boom")
	}

	wrapped := WrapCloudEvent("test-service", svc, handler)

	e := event.New()
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("test-source")

	if err := wrapped(context.Background(), e); err == nil {
		t.Fatal("expected handler error to propagate")
	}
	if lastStatus != types.StatusFailed {
		t.Errorf("expected FAILED status, got %q", lastStatus)
	}
	if errorMessage != "boom" {
		t.Errorf("expected error message captured, got %q", errorMessage)
	}
}
