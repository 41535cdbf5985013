package types

// MeasurementRecordedEvent announces a newly stored measurement entry.
// The analyzer function consumes it and loads the full record by ID.
type MeasurementRecordedEvent struct {
	UserID        string `json:"userId"`
	MeasurementID string `json:"measurementId"`
}

// BodyAnalyzedEvent announces a completed classification run.
type BodyAnalyzedEvent struct {
	UserID        string `json:"userId"`
	MeasurementID string `json:"measurementId"`
	AnalysisID    string `json:"analysisId"`
	PrimaryShape  string `json:"primaryShape,omitempty"`
	Somatotype    string `json:"somatotype,omitempty"`
	Available     bool   `json:"available"`
}
