package report

import (
	"context"
	"errors"
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/14kear/qv-duplicate-report/internal/lib/votescsv"
	"github.com/14kear/qv-duplicate-report/internal/services/dedup"
	"github.com/14kear/qv-duplicate-report/internal/storage/files"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"log/slog"
	"time"
)

const (
	KindStatistics = "vote_statistics"
	KindDuplicates = "duplicate_votes"
)

type BallotStore interface {
	RawVoteFiles(ctx context.Context) ([]string, error)
	ReadRawVotes(ctx context.Context, path string) (votescsv.Ballots, error)
	SaveReport(ctx context.Context, kind, electionName, ts, content string) (string, error)
}

type Service struct {
	log   *slog.Logger
	store BallotStore
	gen   *Generator
	now   func() time.Time
}

// FileResult describes what was produced for one raw votes file.
type FileResult struct {
	Source         string
	ElectionName   string
	Candidates     []string
	Stats          entity.DuplicateStats
	Duplicates     []entity.VoterHistory
	StatisticsPath string
	DuplicatesPath string
}

func NewService(log *slog.Logger, store BallotStore, gen *Generator, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		log:   log,
		store: store,
		gen:   gen,
		now:   now,
	}
}

// Run writes a statistics report for every raw votes file and a duplicate
// detail report for those that contain duplicates. A file that cannot be
// parsed is skipped and its error returned once all files are done; a
// report that cannot be written stops the run.
func (s *Service) Run(ctx context.Context) ([]FileResult, error) {
	const op = "report.Service.Run"

	log := s.log.With(slog.String("op", op))

	results, parseErr := s.Scan(ctx)
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	}

	for i := range results {
		res := &results[i]
		ts := files.Timestamp(s.now())

		content, err := s.gen.Statistics(res.ElectionName, res.Stats)
		if err != nil {
			return results, fmt.Errorf("%s: %w", op, err)
		}
		res.StatisticsPath, err = s.store.SaveReport(ctx, KindStatistics, res.ElectionName, ts, content)
		if err != nil {
			return results, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("statistics report saved",
			slog.String("election", res.ElectionName),
			slog.String("path", res.StatisticsPath),
			slog.Int("total_votes", res.Stats.TotalVotes),
			slog.Int("unique_votes", res.Stats.UniqueVotes),
			slog.Int("duplicate_votes", res.Stats.DuplicateVotes),
			slog.Int("unique_voters", res.Stats.UniqueVoters),
			slog.Int("duplicate_voters", res.Stats.DuplicateVoters),
		)

		if len(res.Duplicates) == 0 {
			log.Info("no duplicates found", slog.String("source", res.Source))
			continue
		}

		content, err = s.gen.Duplicates(res.ElectionName, res.Candidates, res.Duplicates)
		if err != nil {
			return results, fmt.Errorf("%s: %w", op, err)
		}
		res.DuplicatesPath, err = s.store.SaveReport(ctx, KindDuplicates, res.ElectionName, ts, content)
		if err != nil {
			return results, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("duplicate report saved", slog.String("path", res.DuplicatesPath))
	}

	if parseErr != nil {
		return results, fmt.Errorf("%s: %w", op, parseErr)
	}

	return results, nil
}

// Scan resolves every raw votes file without writing anything. Files that
// fail to parse are left out of the result; their errors are joined.
func (s *Service) Scan(ctx context.Context) ([]FileResult, error) {
	const op = "report.Service.Scan"

	log := s.log.With(slog.String("op", op))

	paths, err := s.store.RawVoteFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(paths) == 0 {
		log.Warn("no raw votes files found")
		return nil, nil
	}

	var (
		results []FileResult
		errs    []error
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("%s: %w", op, err)
		}

		log.Info("processing", slog.String("source", path))

		name, err := files.ElectionName(path)
		if err != nil {
			log.Error("skipping file", slog.String("source", path), sl.Err(err))
			errs = append(errs, err)
			continue
		}

		ballots, err := s.store.ReadRawVotes(ctx, path)
		if err != nil {
			log.Error("skipping file", slog.String("source", path), sl.Err(err))
			errs = append(errs, err)
			continue
		}

		resolved := dedup.Resolve(ballots.Records)
		results = append(results, FileResult{
			Source:       path,
			ElectionName: name,
			Candidates:   ballots.Candidates,
			Stats:        resolved.Stats,
			Duplicates:   resolved.Duplicates,
		})
	}

	if len(errs) > 0 {
		return results, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	return results, nil
}
