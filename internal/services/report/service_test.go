package report

import (
	"context"
	"errors"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/14kear/qv-duplicate-report/internal/lib/votescsv"
	"github.com/14kear/qv-duplicate-report/internal/storage/files"
	"github.com/14kear/qv-duplicate-report/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

var candidates = []entity.Candidate{
	{Index: 0, Title: "Park"},
	{Index: 1, Title: "Library"},
}

type testEnv struct {
	dataDir   string
	reportDir string
	svc       *Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	base := t.TempDir()
	env := testEnv{
		dataDir:   filepath.Join(base, "data"),
		reportDir: filepath.Join(base, "report"),
	}

	store, err := files.New(env.dataDir, env.reportDir)
	require.NoError(t, err)

	env.svc = NewService(utils.Discard(), store, NewGenerator(fixedNow), fixedNow)
	return env
}

func (e testEnv) writeRaw(t *testing.T, name string, votes []entity.VoteRecord) {
	t.Helper()

	f, err := os.Create(filepath.Join(e.dataDir, name))
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, votescsv.Write(f, candidates, votes))
}

func (e testEnv) reports(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(e.reportDir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestService_Run_NoFiles(t *testing.T) {
	env := newTestEnv(t)

	results, err := env.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, env.reports(t))
}

func TestService_Run_WithDuplicates(t *testing.T) {
	env := newTestEnv(t)
	env.writeRaw(t, "election_f3de17cf_raw_votes_20250301_090000.csv", []entity.VoteRecord{
		{VoterID: "A", VoteID: "a1", TTL: 100, Votes: map[int]int{0: 3}},
		{VoterID: "A", VoteID: "a2", TTL: 200, Votes: map[int]int{1: 2}},
		{VoterID: "B", VoteID: "b1", TTL: 50, Votes: map[int]int{0: 1}},
	})

	results, err := env.svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "f3de17cf", res.ElectionName)
	assert.Equal(t, entity.DuplicateStats{
		TotalVotes:      3,
		UniqueVoters:    2,
		DuplicateVoters: 1,
		DuplicateVotes:  1,
		UniqueVotes:     2,
	}, res.Stats)

	assert.ElementsMatch(t, []string{
		"vote_statistics_f3de17cf_20250301_101530.md",
		"duplicate_votes_f3de17cf_20250301_101530.md",
	}, env.reports(t))

	detail, err := os.ReadFile(res.DuplicatesPath)
	require.NoError(t, err)
	assert.Contains(t, string(detail), "### Voter ID: A\n")
	assert.Contains(t, string(detail), "#### Vote 2 (counted)\n")
	assert.Contains(t, string(detail), "  - Library: 2\n")
}

func TestService_Run_NoDuplicatesWritesStatisticsOnly(t *testing.T) {
	env := newTestEnv(t)
	env.writeRaw(t, "election_0a9885d5_raw_votes_20250301_090000.csv", []entity.VoteRecord{
		{VoterID: "A", VoteID: "a1", TTL: 1, Votes: map[int]int{0: 1}},
		{VoterID: "B", VoteID: "b1", TTL: 1, Votes: map[int]int{1: 1}},
	})

	results, err := env.svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Empty(t, results[0].DuplicatesPath)
	assert.Equal(t, []string{"vote_statistics_0a9885d5_20250301_101530.md"}, env.reports(t))

	stats, err := os.ReadFile(results[0].StatisticsPath)
	require.NoError(t, err)
	assert.Contains(t, string(stats), "caused by duplicates: 0.0%\n")
}

func TestService_Run_ParseErrorSkipsFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(env.dataDir, "election_broken_raw_votes_20250301_090000.csv"),
		[]byte("Voter ID,Vote ID,Vote TTL,Votes for: Park\nA,a1,not-a-number,1\n"),
		0o644,
	))
	env.writeRaw(t, "election_good_raw_votes_20250301_090000.csv", []entity.VoteRecord{
		{VoterID: "A", VoteID: "a1", TTL: 1, Votes: map[int]int{0: 1}},
	})

	results, err := env.svc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, votescsv.ErrParse)

	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].ElectionName)
	assert.Equal(t, []string{"vote_statistics_good_20250301_101530.md"}, env.reports(t))
}

func TestService_Run_EmptyFile(t *testing.T) {
	env := newTestEnv(t)
	env.writeRaw(t, "election_empty_raw_votes_20250301_090000.csv", nil)

	results, err := env.svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, entity.DuplicateStats{}, results[0].Stats)

	stats, err := os.ReadFile(results[0].StatisticsPath)
	require.NoError(t, err)
	assert.Contains(t, string(stats), "caused by duplicates: N/A\n")
}

func TestService_Run_ExistingReportIsKept(t *testing.T) {
	env := newTestEnv(t)
	env.writeRaw(t, "election_f3de17cf_raw_votes_20250301_090000.csv", []entity.VoteRecord{
		{VoterID: "A", VoteID: "a1", TTL: 1, Votes: map[int]int{0: 1}},
	})

	existing := filepath.Join(env.reportDir, "vote_statistics_f3de17cf_20250301_101530.md")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	results, err := env.svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, filepath.Join(env.reportDir, "vote_statistics_f3de17cf_20250301_101530_1.md"), results[0].StatisticsPath)

	old, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(old))
}

func TestService_Scan_DoesNotWrite(t *testing.T) {
	env := newTestEnv(t)
	env.writeRaw(t, "election_f3de17cf_raw_votes_20250301_090000.csv", []entity.VoteRecord{
		{VoterID: "A", VoteID: "a1", TTL: 1},
		{VoterID: "A", VoteID: "a2", TTL: 2},
	})

	results, err := env.svc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Duplicates, 1)
	assert.Equal(t, []string{"Park", "Library"}, results[0].Candidates)
	assert.Empty(t, env.reports(t))
}

type failingStore struct {
	BallotStore
	err error
}

func (f failingStore) SaveReport(context.Context, string, string, string, string) (string, error) {
	return "", f.err
}

func TestService_Run_SaveErrorAborts(t *testing.T) {
	env := newTestEnv(t)
	env.writeRaw(t, "election_a_raw_votes_20250301_090000.csv", nil)
	env.writeRaw(t, "election_b_raw_votes_20250301_090000.csv", nil)

	store, err := files.New(env.dataDir, env.reportDir)
	require.NoError(t, err)

	readOnly := errors.New("read-only file system")
	svc := NewService(utils.Discard(), failingStore{BallotStore: store, err: readOnly}, NewGenerator(fixedNow), fixedNow)

	results, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, readOnly)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].StatisticsPath)
	assert.Empty(t, results[1].StatisticsPath)
}

func TestService_Run_CanceledContext(t *testing.T) {
	env := newTestEnv(t)
	env.writeRaw(t, "election_a_raw_votes_20250301_090000.csv", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.svc.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
