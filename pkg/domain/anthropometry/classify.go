package anthropometry

import "strings"

// Report is the full output of one classification run. When hard
// validation errors occur, Errors is non-empty, Shape.Available is false
// and the ratio/somatotype stages are skipped; warnings alone do not stop
// the pipeline.
type Report struct {
	EntryID    string               `json:"entryId,omitempty"`
	Sanitized  *SanitizedEntry      `json:"sanitized"`
	Warnings   []string             `json:"warnings,omitempty"`
	Errors     []string             `json:"errors,omitempty"`
	Ratios     RatioSet             `json:"ratios,omitempty"`
	Shape      ClassificationResult `json:"shape"`
	Somatotype *SomatotypeResult    `json:"somatotype,omitempty"`
	Tips       []string             `json:"tips,omitempty"`
}

// Classify runs the whole pipeline: sanitize, derive ratios, classify
// shape and somatotype, synthesize tips. It is deterministic and
// side-effect free; concurrent calls on different entries are safe.
//
// Data-completeness failures are not Go errors: they are reported inside
// the Report so the caller always gets the preprocessing output and the
// reason classification stopped.
func Classify(entry *MeasurementEntry) *Report {
	sanitized, warnings, errs := Sanitize(entry)

	report := &Report{
		EntryID:   entry.ID,
		Sanitized: sanitized,
		Warnings:  warnings,
	}

	if len(errs) > 0 {
		reasons := make([]string, len(errs))
		for i, err := range errs {
			reasons[i] = err.Error()
		}
		report.Errors = reasons
		report.Shape = ClassificationResult{
			Available: false,
			Reason:    "classification unavailable: " + strings.Join(reasons, "; "),
		}
		report.Tips = SynthesizeTips(report.Shape, nil)
		return report
	}

	report.Ratios = ComputeRatios(sanitized)
	report.Shape = ClassifyShape(sanitized, report.Ratios)
	report.Somatotype = ClassifySomatotype(sanitized, entry.Advanced, entry.Survey, report.Ratios)
	report.Tips = SynthesizeTips(report.Shape, report.Somatotype)
	return report
}
