package database

import (
	"context"

	"cloud.google.com/go/firestore"

	shared "github.com/physiq/physiq-server/pkg"
	"github.com/physiq/physiq-server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore.
// Measurements and analyses live in per-user subcollections; executions are
// a flat top-level collection keyed by execution ID.
type FirestoreAdapter struct {
	Client *firestore.Client
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{Client: client}
}

func (a *FirestoreAdapter) executions() *firestore.CollectionRef {
	return a.Client.Collection(shared.CollectionExecutions)
}

func (a *FirestoreAdapter) measurements(userID string) *firestore.CollectionRef {
	return a.Client.Collection(shared.CollectionUsers).Doc(userID).Collection(shared.CollectionMeasurements)
}

func (a *FirestoreAdapter) analyses(userID string) *firestore.CollectionRef {
	return a.Client.Collection(shared.CollectionUsers).Doc(userID).Collection(shared.CollectionAnalyses)
}

// --- Executions ---

func (a *FirestoreAdapter) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	_, err := a.executions().Doc(record.ExecutionID).Set(ctx, record)
	return err
}

func (a *FirestoreAdapter) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	_, err := a.executions().Doc(id).Set(ctx, data, firestore.MergeAll)
	return err
}

// --- Measurements ---

func (a *FirestoreAdapter) GetMeasurement(ctx context.Context, userID, id string) (*types.MeasurementRecord, error) {
	snap, err := a.measurements(userID).Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	var record types.MeasurementRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, err
	}
	// The doc key is authoritative
	record.ID = id
	return &record, nil
}

func (a *FirestoreAdapter) SetMeasurement(ctx context.Context, record *types.MeasurementRecord) error {
	_, err := a.measurements(record.UserID).Doc(record.ID).Set(ctx, record)
	return err
}

func (a *FirestoreAdapter) ListMeasurements(ctx context.Context, userID string) ([]*types.MeasurementRecord, error) {
	docs, err := a.measurements(userID).OrderBy("recorded_at", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	results := make([]*types.MeasurementRecord, 0, len(docs))
	for _, d := range docs {
		var record types.MeasurementRecord
		if err := d.DataTo(&record); err != nil {
			return nil, err
		}
		if record.ID == "" {
			record.ID = d.Ref.ID
		}
		results = append(results, &record)
	}
	return results, nil
}

// --- Analyses ---

func (a *FirestoreAdapter) GetAnalysis(ctx context.Context, userID, id string) (*types.AnalysisRecord, error) {
	snap, err := a.analyses(userID).Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	var record types.AnalysisRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

func (a *FirestoreAdapter) SetAnalysis(ctx context.Context, record *types.AnalysisRecord) error {
	_, err := a.analyses(record.UserID).Doc(record.ID).Set(ctx, record)
	return err
}
