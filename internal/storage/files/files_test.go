package files

import (
	"context"
	"encoding/json"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/14kear/qv-duplicate-report/internal/lib/votescsv"
	"github.com/14kear/qv-duplicate-report/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	electionID = "f3de17cf-af54-40e0-b460-d3c28d691df6"
	ts         = "20250102_030405"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	base := t.TempDir()
	s, err := New(filepath.Join(base, "data"), filepath.Join(base, "report"))
	require.NoError(t, err)
	return s, base
}

func testElection() entity.Election {
	return entity.Election{
		ID:     electionID,
		Config: entity.ElectionConfig{Name: "Budget", Budget: 10},
		Candidates: []entity.Candidate{
			{Index: 0, Title: "Park"},
			{Index: 1, Title: "Library"},
		},
		Votes: []entity.VoteRecord{
			{VoterID: "v1", VoteID: "a", TTL: 1, Votes: map[int]int{0: 2}},
			{VoterID: "v1", VoteID: "b", TTL: 2, Votes: map[int]int{1: 1}},
		},
		Raw: []byte(`{"id":"f3de17cf-af54-40e0-b460-d3c28d691df6","config":{"name":"Budget 予算","budget":10}}`),
	}
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, ts, Timestamp(at))
}

func TestSaveRawJSON_KeepsDocument(t *testing.T) {
	s, base := newTestStorage(t)
	election := testElection()

	path, err := s.SaveRawJSON(context.Background(), electionID, ts, election.Raw)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "data", "election_"+electionID+"_raw_"+ts+".json"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, string(election.Raw), string(got))
	assert.Contains(t, string(got), "予算")
}

func TestSaveRawVotesCSV_ReadBack(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	election := testElection()

	path, err := s.SaveRawVotesCSV(ctx, election, ts)
	require.NoError(t, err)

	files, err := s.RawVoteFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)

	ballots, err := s.ReadRawVotes(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Park", "Library"}, ballots.Candidates)
	require.Len(t, ballots.Records, 2)
	assert.Equal(t, map[int]int{0: 0, 1: 1}, ballots.Records[1].Votes)

	name, err := ElectionName(path)
	require.NoError(t, err)
	assert.Equal(t, electionID, name)
}

func TestSave_NeverOverwrites(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	election := testElection()

	first, err := s.SaveRawVotesCSV(ctx, election, ts)
	require.NoError(t, err)
	second, err := s.SaveRawVotesCSV(ctx, election, ts)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "election_"+electionID+"_raw_votes_"+ts+"_1.csv", filepath.Base(second))

	files, err := s.RawVoteFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	name, err := ElectionName(second)
	require.NoError(t, err)
	assert.Equal(t, electionID, name)
}

func TestSaveSummary(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	summary := entity.ElectionSummary{
		ElectionID:   electionID,
		ElectionName: "Budget",
		Budget:       10,
		Results: []entity.CandidateResult{
			{Title: "Park", Description: "green", TotalVotes: 2},
			{Title: "Library", Description: "books", TotalVotes: 1},
		},
	}

	jsonPath, err := s.SaveSummaryJSON(ctx, summary, ts)
	require.NoError(t, err)
	assert.Equal(t, "election_"+electionID+"_processed_"+ts+".json", filepath.Base(jsonPath))

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, electionID, decoded["election_id"])
	assert.Equal(t, "Budget", decoded["election_name"])
	assert.Len(t, decoded["results"], 2)

	csvPath, err := s.SaveSummaryCSV(ctx, summary, ts)
	require.NoError(t, err)
	assert.Equal(t, "election_"+electionID+"_"+ts+".csv", filepath.Base(csvPath))

	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Title,Description,Total Votes\nPark,green,2\nLibrary,books,1\n", string(content))

	// processed files must not be picked up as raw votes input
	files, err := s.RawVoteFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSaveReport(t *testing.T) {
	s, base := newTestStorage(t)

	path, err := s.SaveReport(context.Background(), "vote_statistics", electionID, ts, "# title\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "report", "vote_statistics_"+electionID+"_"+ts+".md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# title\n", string(content))
}

func TestReadRawVotes_ParseError(t *testing.T) {
	s, base := newTestStorage(t)

	path := filepath.Join(base, "data", "election_x_raw_votes_"+ts+".csv")
	require.NoError(t, os.WriteFile(path, []byte("Voter ID,Vote ID,Vote TTL\nv1,a,later\n"), 0o644))

	_, err := s.ReadRawVotes(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, votescsv.ErrInvalidTTL)
}

func TestReadRawVotes_MissingFile(t *testing.T) {
	s, base := newTestStorage(t)

	_, err := s.ReadRawVotes(context.Background(), filepath.Join(base, "data", "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestElectionName_Invalid(t *testing.T) {
	for _, name := range []string{"votes.csv", "raw_votes_x_y.csv", "election__raw_votes_1.csv"} {
		_, err := ElectionName(name)
		assert.ErrorIs(t, err, storage.ErrBadFileName, name)
	}
}

func TestCanceledContext(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SaveRawVotesCSV(ctx, testElection(), ts)
	assert.ErrorIs(t, err, context.Canceled)
}
