package service

import (
	"fmt"

	"mindcheck/internal/model"
)

// frequency options shared by every default question, best first
var frequencyOptions = []model.Option{
	{Key: "a", Text: "Not at all", Weight: 3},
	{Key: "b", Text: "Several days", Weight: 2},
	{Key: "c", Text: "More than half the days", Weight: 1},
	{Key: "d", Text: "Nearly every day", Weight: 0},
}

var defaultQuestionTexts = []string{
	"I have not been feeling cheerful or in good spirits.",
	"I have had trouble sleeping (too much or too little).",
	"I have felt downhearted, depressed, or hopeless.",
	"I have found it difficult to relax.",
	"I have been feeling nervous, anxious, or on edge.",
	"I have not been able to stop or control worrying.",
	"I have experienced no interest or pleasure in doing things.",
	"I have felt tired or had little energy.",
	"I have had a poor appetite or been overeating.",
	"I have felt I am a failure or have let myself or my family down.",
	"I have had trouble concentrating on things like reading or watching TV.",
	"I have been more irritable, feeling easily annoyed.",
	"I have felt restless and found it hard to sit still.",
	"I have felt hopeless about the future.",
	"I have had thoughts that I would be better off dead or hurting myself.",
}

// DefaultQuestions returns the seed set: q1..q15, four options each
func DefaultQuestions() []model.Question {
	questions := make([]model.Question, len(defaultQuestionTexts))
	for i, text := range defaultQuestionTexts {
		opts := make([]model.Option, len(frequencyOptions))
		copy(opts, frequencyOptions)
		questions[i] = model.Question{
			QID:      fmt.Sprintf("q%d", i+1),
			Text:     text,
			Position: i,
			Options:  opts,
		}
	}
	return questions
}
