package model

import "time"

// Result is the categorical outcome of a scored survey
type Result string

const (
	ResultHealthy      Result = "Healthy"
	ResultMildConcerns Result = "Mild Concerns"
	ResultAtRisk       Result = "At Risk"
)

// Results lists every category, best first
var Results = []Result{ResultHealthy, ResultMildConcerns, ResultAtRisk}

// Answers maps question id to the chosen option key
type Answers map[string]string

// SurveyEntry is one persisted submission. Entries are never updated.
type SurveyEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Answers   Answers   `json:"answers" bson:"answers"`
	Result    Result    `json:"result" bson:"result"`
	Meter     int       `json:"meter" bson:"meter"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ResolvedAnswer is an answer joined against the current question set.
// Known is false when the question or option no longer exists.
type ResolvedAnswer struct {
	QID        string `json:"qid"`
	Key        string `json:"key"`
	Question   string `json:"question,omitempty"`
	OptionText string `json:"optionText,omitempty"`
	Weight     int    `json:"weight"`
	Known      bool   `json:"known"`
}

// EntryDetail is a survey entry with its answers resolved
type EntryDetail struct {
	SurveyEntry
	Resolved []ResolvedAnswer `json:"resolved"`
}

// SurveyStats counts entries per result
type SurveyStats struct {
	Total    int64            `json:"total"`
	ByResult map[Result]int64 `json:"byResult"`
}

// SubmitRequest is the body of POST /survey and POST /survey/check
type SubmitRequest struct {
	Answers Answers `json:"answers"`
}

// SubmitResponse is returned by POST /survey
type SubmitResponse struct {
	Meter  int    `json:"meter"`
	Result Result `json:"result"`
}

// CheckResponse is returned by POST /survey/check
type CheckResponse struct {
	Meter    int    `json:"meter"`
	Result   Result `json:"result"`
	Feedback string `json:"feedback"`
}
