// Package analyzer consumes measurement-recorded events, runs the
// anthropometric classification engine over the stored entry and persists
// the resulting report.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"

	shared "github.com/physiq/physiq-server/pkg"
	"github.com/physiq/physiq-server/pkg/bootstrap"
	"github.com/physiq/physiq-server/pkg/domain/anthropometry"
	apperrors "github.com/physiq/physiq-server/pkg/errors"
	"github.com/physiq/physiq-server/pkg/framework"
	infrapubsub "github.com/physiq/physiq-server/pkg/infrastructure/pubsub"
	"github.com/physiq/physiq-server/pkg/types"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("AnalyzeBody", AnalyzeBody)
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

// AnalyzeBody is the entry point
func AnalyzeBody(ctx context.Context, e event.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %v", err)
	}
	return framework.WrapCloudEvent("analyzer", svc, analyzeHandler)(ctx, e)
}

// analyzeHandler contains the business logic
func analyzeHandler(ctx context.Context, e event.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	// Parse Pub/Sub message
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err != nil {
		return nil, fmt.Errorf("event.DataAs: %v", err)
	}

	var recorded types.MeasurementRecordedEvent
	if err := json.Unmarshal(msg.Message.Data, &recorded); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeMeasurementInvalidFormat, "failed to parse measurement event")
	}
	if recorded.UserID == "" || recorded.MeasurementID == "" {
		return nil, apperrors.New(apperrors.CodeMeasurementInvalidFormat, "event missing userId or measurementId")
	}

	fwCtx.Logger.Info("Starting analysis", "user_id", recorded.UserID, "measurement_id", recorded.MeasurementID)

	record, err := fwCtx.Service.DB.GetMeasurement(ctx, recorded.UserID, recorded.MeasurementID)
	if err != nil {
		return nil, apperrors.ErrMeasurementNotFound.WithCause(err).WithMetadata("measurement_id", recorded.MeasurementID)
	}
	if record.Entry == nil {
		return nil, apperrors.New(apperrors.CodeMeasurementIncomplete, "measurement record has no entry data")
	}

	report := anthropometry.Classify(record.Entry)

	analysis := &types.AnalysisRecord{
		ID:            uuid.NewString(),
		UserID:        recorded.UserID,
		MeasurementID: recorded.MeasurementID,
		CreatedAt:     time.Now().UTC(),
		Report:        report,
	}

	if err := fwCtx.Service.DB.SetAnalysis(ctx, analysis); err != nil {
		return nil, apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to persist analysis")
	}

	// Archive the full report to GCS when a bucket is configured
	if bucket := fwCtx.Service.Config.GCSArtifactBucket; bucket != "" {
		object := fmt.Sprintf("analyses/%s/%s.json", recorded.UserID, analysis.ID)
		data, err := json.Marshal(analysis)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to marshal analysis")
		}
		if err := fwCtx.Service.Store.Write(ctx, bucket, object, data); err != nil {
			// Archive is best-effort, the record of truth is Firestore
			fwCtx.Logger.Warn("Failed to archive analysis to GCS", "bucket", bucket, "object", object, "error", err)
		}
	}

	analyzed := types.BodyAnalyzedEvent{
		UserID:        recorded.UserID,
		MeasurementID: recorded.MeasurementID,
		AnalysisID:    analysis.ID,
		Available:     report.Shape.Available,
	}
	if report.Shape.Available {
		analyzed.PrimaryShape = report.Shape.Primary
	}
	if report.Somatotype != nil {
		analyzed.Somatotype = report.Somatotype.Dominant
	}

	outEvent, err := infrapubsub.NewCloudEvent("/analyzer", shared.EventTypeBodyAnalyzed, analyzed)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodePubSubError, "failed to create analyzed event")
	}

	msgID, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, shared.TopicBodyAnalyzed, outEvent)
	if err != nil {
		return nil, apperrors.WrapRetryable(err, apperrors.CodePubSubError, "failed to publish analyzed event")
	}

	fwCtx.Logger.Info("Analysis complete",
		"analysis_id", analysis.ID,
		"available", analyzed.Available,
		"primary_shape", analyzed.PrimaryShape,
		"message_id", msgID)

	return map[string]interface{}{
		"analysis_id":   analysis.ID,
		"primary_shape": analyzed.PrimaryShape,
		"available":     analyzed.Available,
	}, nil
}
