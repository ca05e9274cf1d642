package types

import "time"

// Digest is a stored run of the scheduled summarization job.
type Digest struct {
	ID        string          `firestore:"-" json:"id"`
	Keyword   string          `firestore:"keyword" json:"keyword"`
	Language  string          `firestore:"language" json:"language"`
	CreatedAt time.Time       `firestore:"createdAt" json:"created_at"`
	Results   []SummaryResult `firestore:"results" json:"results"`
}
