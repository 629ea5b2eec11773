package model

// MaxDisplayedErrors caps the error list returned from a bulk import.
// TotalErrors always carries the exact count.
const MaxDisplayedErrors = 10

// ImportResult summarizes one bulk ingestion batch
type ImportResult struct {
	BatchID       string   `json:"batchId"`
	Message       string   `json:"message"`
	ImportedCount int      `json:"importedCount"`
	UpdatedCount  int      `json:"updatedCount"`
	Errors        []string `json:"errors"`
	TotalErrors   int      `json:"totalErrors"`
}

// WebhookResult is the acknowledgement returned for one webhook delivery
type WebhookResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResponseID string `json:"response_id,omitempty"`
	SurveyType int    `json:"survey_type,omitempty"`
	Created    bool   `json:"created"`
	Skipped    bool   `json:"skipped,omitempty"`
}
