// Package execution writes the per-invocation audit trail: every cloud
// function logs a PENDING record up front and resolves it to SUCCESS or
// FAILED with captured inputs/outputs.
package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/physiq/physiq-server/pkg/types"
)

// Database is the subset of the persistence interface the logger needs.
type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error
}

// Options contains optional fields for execution logging.
type Options struct {
	UserID      string
	TriggerType string
	Inputs      interface{}
}

// LogStart creates an execution record with PENDING status and captured
// inputs, returning the generated execution ID.
func LogStart(ctx context.Context, db Database, service string, opts Options) (string, error) {
	execID := fmt.Sprintf("%s-%d", service, time.Now().UnixNano())

	record := &types.ExecutionRecord{
		ExecutionID: execID,
		Service:     service,
		Status:      types.StatusPending,
		StartTime:   time.Now().UTC(),
		UserID:      opts.UserID,
		TriggerType: opts.TriggerType,
	}

	if opts.Inputs != nil {
		if inputsJSON, err := json.Marshal(opts.Inputs); err == nil {
			record.InputsJSON = string(inputsJSON)
		}
	}

	if err := db.SetExecution(ctx, record); err != nil {
		return execID, fmt.Errorf("failed to log execution start: %w", err)
	}

	return execID, nil
}

// LogSuccess updates an execution record with SUCCESS status.
func LogSuccess(ctx context.Context, db Database, execID string, outputs interface{}) error {
	updates := map[string]interface{}{
		"status":   types.StatusSuccess,
		"end_time": time.Now().UTC(),
	}

	if outputs != nil {
		if outputsJSON, err := json.Marshal(outputs); err == nil {
			updates["outputs_json"] = string(outputsJSON)
		}
	}

	if err := db.UpdateExecution(ctx, execID, updates); err != nil {
		return fmt.Errorf("failed to log execution success: %w", err)
	}

	return nil
}

// LogFailure updates an execution record with FAILED status.
func LogFailure(ctx context.Context, db Database, execID string, cause error) error {
	updates := map[string]interface{}{
		"status":        types.StatusFailed,
		"end_time":      time.Now().UTC(),
		"error_message": cause.Error(),
	}

	if err := db.UpdateExecution(ctx, execID, updates); err != nil {
		return fmt.Errorf("failed to log execution failure: %w", err)
	}

	return nil
}
