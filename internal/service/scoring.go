package service

import (
	"math"

	"mindcheck/internal/model"
)

const (
	healthyThreshold = 80
	mildThreshold    = 50
)

var feedback = map[model.Result]string{
	model.ResultHealthy:      "Great! You seem to be in a good place. Keep up your positive habits.",
	model.ResultMildConcerns: "You have some areas to watch. Consider simple stress-relief techniques or talking to someone you trust.",
	model.ResultAtRisk:       "It looks like you may need support. Please consider reaching out to a mental health professional.",
}

// WeightTable resolves (question id, option key) pairs to weights
type WeightTable struct {
	weights   map[string]map[string]int
	questions int
	maxWeight int
}

// NewWeightTable builds the lookup for a question set. The per-question
// maximum is the largest option weight found anywhere in the set.
func NewWeightTable(questions []*model.Question) *WeightTable {
	t := &WeightTable{
		weights:   make(map[string]map[string]int, len(questions)),
		questions: len(questions),
	}
	for _, q := range questions {
		opts := make(map[string]int, len(q.Options))
		for _, o := range q.Options {
			opts[o.Key] = o.Weight
			if o.Weight > t.maxWeight {
				t.maxWeight = o.Weight
			}
		}
		t.weights[q.QID] = opts
	}
	return t
}

// Weight returns 0 for unknown questions or options
func (t *WeightTable) Weight(qid, key string) int {
	return t.weights[qid][key]
}

// MaxWeight is the largest weight any single answer can contribute
func (t *WeightTable) MaxWeight() int {
	return t.maxWeight
}

// MaxPossible is the total of a survey answered with the best option everywhere
func (t *WeightTable) MaxPossible() int {
	return t.questions * t.maxWeight
}

// Assessment is the outcome of scoring one answer set
type Assessment struct {
	Meter    int          `json:"meter"`
	Result   model.Result `json:"result"`
	Feedback string       `json:"feedback,omitempty"`
}

// Score computes the meter and result for answers. Answers that do not
// match a known question/option add nothing.
func Score(table *WeightTable, answers model.Answers) Assessment {
	total := 0
	for qid, key := range answers {
		total += table.Weight(qid, key)
	}

	meter := 0
	if maxPossible := table.MaxPossible(); maxPossible > 0 {
		meter = int(math.Round(100 * float64(total) / float64(maxPossible)))
	}
	if meter < 0 {
		meter = 0
	}
	if meter > 100 {
		meter = 100
	}

	result := Classify(meter)
	return Assessment{
		Meter:    meter,
		Result:   result,
		Feedback: Feedback(result),
	}
}

// Classify maps a meter value to its result category
func Classify(meter int) model.Result {
	switch {
	case meter >= healthyThreshold:
		return model.ResultHealthy
	case meter >= mildThreshold:
		return model.ResultMildConcerns
	default:
		return model.ResultAtRisk
	}
}

// Feedback returns the respondent-facing text for a result
func Feedback(result model.Result) string {
	return feedback[result]
}
