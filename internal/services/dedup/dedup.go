// Package dedup resolves repeated ballots of the same voter.
//
// Voters are grouped in the order their first record appears. For each
// voter the record with the highest TTL is authoritative; among records
// sharing that TTL the earliest one in the input wins. The other records
// are kept for the detail view and only excluded from the statistics.
package dedup

import (
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"sort"
)

type Result struct {
	Stats entity.DuplicateStats
	// Authoritative holds one record per voter, in voter first-seen order.
	Authoritative []entity.VoteRecord
	// Duplicates holds every voter with more than one record, all records kept.
	Duplicates []entity.VoterHistory
}

// Group collects records by voter id. Voters appear in the order of their
// first record and each voter's records keep their input order.
func Group(records []entity.VoteRecord) []entity.VoterHistory {
	index := make(map[string]int)
	histories := make([]entity.VoterHistory, 0)

	for _, r := range records {
		i, ok := index[r.VoterID]
		if !ok {
			i = len(histories)
			index[r.VoterID] = i
			histories = append(histories, entity.VoterHistory{VoterID: r.VoterID})
		}
		histories[i].Records = append(histories[i].Records, r)
	}

	return histories
}

// Latest returns the authoritative record of a voter. It panics on an
// empty history, which Group never produces.
func Latest(history entity.VoterHistory) entity.VoteRecord {
	ordered := make([]entity.VoteRecord, len(history.Records))
	copy(ordered, history.Records)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TTL > ordered[j].TTL
	})

	return ordered[0]
}

// Duplicates returns only the voters with more than one record.
func Duplicates(histories []entity.VoterHistory) []entity.VoterHistory {
	var out []entity.VoterHistory
	for _, h := range histories {
		if h.Duplicated() {
			out = append(out, h)
		}
	}
	return out
}

func Resolve(records []entity.VoteRecord) Result {
	histories := Group(records)

	res := Result{
		Authoritative: make([]entity.VoteRecord, 0, len(histories)),
		Duplicates:    Duplicates(histories),
	}

	res.Stats.TotalVotes = len(records)
	res.Stats.UniqueVoters = len(histories)

	for _, h := range histories {
		res.Authoritative = append(res.Authoritative, Latest(h))
		res.Stats.UniqueVotes++

		if h.Duplicated() {
			res.Stats.DuplicateVoters++
			res.Stats.DuplicateVotes += len(h.Records) - 1
		}
	}

	return res
}
