package entity

type DuplicateStats struct {
	TotalVotes      int
	UniqueVoters    int
	DuplicateVoters int
	DuplicateVotes  int
	UniqueVotes     int
}

// IncreaseRate is DuplicateVotes relative to UniqueVotes, in percent.
// ok is false when there are no unique votes to compare against.
func (s DuplicateStats) IncreaseRate() (rate float64, ok bool) {
	if s.UniqueVotes == 0 {
		return 0, false
	}
	return float64(s.DuplicateVotes) / float64(s.UniqueVotes) * 100, true
}
