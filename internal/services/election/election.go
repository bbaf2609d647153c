package election

import (
	"context"
	"errors"
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/14kear/qv-duplicate-report/internal/storage/files"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/google/uuid"
	"log/slog"
	"time"
)

var (
	ErrInvalidElectionID = errors.New("invalid election id")
	ErrUnknownCandidate  = errors.New("vote for unknown candidate")
)

//go:generate mockgen -source=election.go -destination=mocks/mocks.go -package=mocks

type ElectionSource interface {
	Election(ctx context.Context, electionID string) (entity.Election, error)
}

type ArtifactSaver interface {
	SaveRawJSON(ctx context.Context, electionID, ts string, raw []byte) (string, error)
	SaveRawVotesCSV(ctx context.Context, election entity.Election, ts string) (string, error)
	SaveSummaryJSON(ctx context.Context, summary entity.ElectionSummary, ts string) (string, error)
	SaveSummaryCSV(ctx context.Context, summary entity.ElectionSummary, ts string) (string, error)
}

type Service struct {
	log    *slog.Logger
	source ElectionSource
	saver  ArtifactSaver
	now    func() time.Time
}

// Outcome is the result of processing one election. Err is set when the
// election was skipped; Summary and Files are then partial or empty.
type Outcome struct {
	ElectionID string
	Summary    entity.ElectionSummary
	Files      []string
	Err        error
}

func NewService(log *slog.Logger, source ElectionSource, saver ArtifactSaver, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		log:    log,
		source: source,
		saver:  saver,
		now:    now,
	}
}

// FetchAll processes elections one after another under a single run
// timestamp. A failed fetch or an inconsistent document skips that election
// only. A failed artifact write stops the run, since later steps read those
// files.
func (s *Service) FetchAll(ctx context.Context, electionIDs []string) ([]Outcome, error) {
	const op = "election.Service.FetchAll"

	ts := files.Timestamp(s.now())
	outcomes := make([]Outcome, 0, len(electionIDs))

	for _, id := range electionIDs {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("%s: %w", op, err)
		}

		outcome, err := s.fetchOne(ctx, id, ts)
		if err != nil {
			return append(outcomes, outcome), fmt.Errorf("%s: %w", op, err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func (s *Service) fetchOne(ctx context.Context, id, ts string) (Outcome, error) {
	const op = "election.Service.fetchOne"

	log := s.log.With(slog.String("op", op), slog.String("election_id", id))
	outcome := Outcome{ElectionID: id}

	if _, err := uuid.Parse(id); err != nil {
		outcome.Err = fmt.Errorf("%w: %q", ErrInvalidElectionID, id)
		log.Error("skipping election", sl.Err(outcome.Err))
		return outcome, nil
	}

	log.Info("fetching election")

	election, err := s.source.Election(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return outcome, ctx.Err()
		}
		outcome.Err = err
		log.Error("failed to fetch election, skipping", sl.Err(err))
		return outcome, nil
	}

	if election.ID != id {
		if election.ID != "" {
			log.Warn("document id differs from requested id", slog.String("document_id", election.ID))
		}
		election.ID = id
	}

	path, err := s.saver.SaveRawJSON(ctx, id, ts, election.Raw)
	if err != nil {
		return outcome, err
	}
	outcome.Files = append(outcome.Files, path)
	log.Info("raw data saved", slog.String("path", path))

	path, err = s.saver.SaveRawVotesCSV(ctx, election, ts)
	if err != nil {
		return outcome, err
	}
	outcome.Files = append(outcome.Files, path)
	log.Info("raw votes saved", slog.String("path", path), slog.Int("votes", len(election.Votes)))

	summary, err := Aggregate(election)
	if err != nil {
		outcome.Err = err
		log.Error("failed to aggregate votes, skipping", sl.Err(err))
		return outcome, nil
	}
	outcome.Summary = summary

	path, err = s.saver.SaveSummaryJSON(ctx, summary, ts)
	if err != nil {
		return outcome, err
	}
	outcome.Files = append(outcome.Files, path)
	log.Info("processed data saved", slog.String("path", path))

	path, err = s.saver.SaveSummaryCSV(ctx, summary, ts)
	if err != nil {
		return outcome, err
	}
	outcome.Files = append(outcome.Files, path)
	log.Info("results csv saved", slog.String("path", path))

	return outcome, nil
}
