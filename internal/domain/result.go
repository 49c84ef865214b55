package domain

// UpdateOutcome reports how many documents an update touched.
type UpdateOutcome struct {
	MatchedCount  int64
	ModifiedCount int64
}
