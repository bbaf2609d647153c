package election

import (
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
)

// Aggregate sums every record's weights per candidate. Repeated ballots of
// one voter all count here; deduplication is a separate view.
func Aggregate(election entity.Election) (entity.ElectionSummary, error) {
	const op = "election.Aggregate"

	totals := make([]int, len(election.Candidates))

	for _, vote := range election.Votes {
		for idx, weight := range vote.Votes {
			if idx < 0 || idx >= len(totals) {
				return entity.ElectionSummary{}, fmt.Errorf("%s: %w: vote %s references candidate %d of %d",
					op, ErrUnknownCandidate, vote.VoteID, idx, len(totals))
			}
			totals[idx] += weight
		}
	}

	results := make([]entity.CandidateResult, 0, len(election.Candidates))
	for i, c := range election.Candidates {
		results = append(results, entity.CandidateResult{
			Title:       c.Title,
			Description: c.Description,
			TotalVotes:  totals[i],
		})
	}

	return entity.ElectionSummary{
		ElectionID:   election.ID,
		ElectionName: election.Config.Name,
		Budget:       election.Config.Budget,
		Results:      results,
	}, nil
}
