package shared

// ProjectID is the fallback GCP project when GOOGLE_CLOUD_PROJECT is unset.
const ProjectID = "physiq-prod"

// Pub/Sub topics.
const (
	TopicMeasurementRecorded = "measurement-recorded"
	TopicBodyAnalyzed        = "body-analyzed"
)

// CloudEvent types.
const (
	EventTypeMeasurementRecorded = "com.physiq.measurement.recorded"
	EventTypeBodyAnalyzed        = "com.physiq.body.analyzed"
)

// Firestore collections.
const (
	CollectionUsers        = "users"
	CollectionMeasurements = "measurements"
	CollectionAnalyses     = "analyses"
	CollectionExecutions   = "executions"
)

// SecretIngestToken is the Secret Manager name of the shared token the
// measurement ingestion API requires.
const SecretIngestToken = "MEASUREMENT_INGEST_TOKEN"
