package types

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// Sentiment is the top class reported by a classifier.
type Sentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// SentimentResult is the response for a single analyzed text.
type SentimentResult struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}
