package entity

type Candidate struct {
	Index       int
	Title       string
	Description string
}

type ElectionConfig struct {
	Name   string
	Budget int
}

// Election is one election document as returned by the remote API.
// Raw keeps the fetched bytes untouched for the full-fidelity dump.
type Election struct {
	ID         string
	Config     ElectionConfig
	Candidates []Candidate
	Votes      []VoteRecord
	Raw        []byte
}

type CandidateResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TotalVotes  int    `json:"total_votes"`
}

type ElectionSummary struct {
	ElectionID   string            `json:"election_id"`
	ElectionName string            `json:"election_name"`
	Budget       int               `json:"budget"`
	Results      []CandidateResult `json:"results"`
}
