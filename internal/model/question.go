package model

// Option is one weighted choice of a question
type Option struct {
	Key    string `json:"key" bson:"key"`
	Text   string `json:"text" bson:"text"`
	Weight int    `json:"weight" bson:"weight"`
}

// Question is a survey item. QID is unique across the collection.
type Question struct {
	ID       string   `json:"-" bson:"_id,omitempty"`
	QID      string   `json:"qid" bson:"qid"`
	Text     string   `json:"text" bson:"text"`
	Position int      `json:"position" bson:"position"` // seed order
	Options  []Option `json:"options" bson:"options"`
}

// PublicOption is an option as shown to respondents (no weight)
type PublicOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// PublicQuestion is a question as shown to respondents
type PublicQuestion struct {
	QID     string         `json:"qid"`
	Text    string         `json:"text"`
	Options []PublicOption `json:"options"`
}

// Public strips option weights
func (q *Question) Public() PublicQuestion {
	opts := make([]PublicOption, len(q.Options))
	for i, o := range q.Options {
		opts[i] = PublicOption{Key: o.Key, Text: o.Text}
	}
	return PublicQuestion{QID: q.QID, Text: q.Text, Options: opts}
}

// FindOption returns the option with the given key, if any
func (q *Question) FindOption(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}
