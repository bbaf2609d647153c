package entity

// VoteRecord is a single submitted ballot. TTL is a recency marker assigned
// by the source: a higher value means a later submission.
type VoteRecord struct {
	VoterID string
	VoteID  string
	TTL     int64
	Votes   map[int]int
}

// Weight returns the weight given to the candidate at idx, 0 when absent.
func (r VoteRecord) Weight(idx int) int {
	return r.Votes[idx]
}

// VoterHistory holds every record of one voter in arrival order.
type VoterHistory struct {
	VoterID string
	Records []VoteRecord
}

func (h VoterHistory) Duplicated() bool {
	return len(h.Records) > 1
}
