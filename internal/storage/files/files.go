package files

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/14kear/qv-duplicate-report/internal/lib/votescsv"
	"github.com/14kear/qv-duplicate-report/internal/storage"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// TimestampLayout is the timestamp embedded in every artifact name.
	TimestampLayout = "20060102_150405"

	// RawVotesPattern matches raw votes files inside the data directory.
	RawVotesPattern = "election_*_raw_votes_*.csv"

	maxNameSuffix = 100
)

// Storage keeps every artifact as a flat file under the data and report
// directories. Files are created exclusively: an existing artifact is never
// rewritten, a numeric suffix is added to the new name instead.
type Storage struct {
	dataDir   string
	reportDir string
}

func New(dataDir, reportDir string) (*Storage, error) {
	const op = "storage.files.New"

	for _, dir := range []string{dataDir, reportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return &Storage{dataDir: dataDir, reportDir: reportDir}, nil
}

func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// SaveRawJSON writes the fetched document re-indented but otherwise untouched.
func (s *Storage) SaveRawJSON(ctx context.Context, electionID, ts string, raw []byte) (string, error) {
	const op = "storage.files.SaveRawJSON"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	buf.WriteByte('\n')

	path, err := s.writeArtifact(s.dataName("election_%s_raw_%s.json", electionID, ts), func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path, nil
}

func (s *Storage) SaveRawVotesCSV(ctx context.Context, election entity.Election, ts string) (string, error) {
	const op = "storage.files.SaveRawVotesCSV"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.writeArtifact(s.dataName("election_%s_raw_votes_%s.csv", election.ID, ts), func(w io.Writer) error {
		return votescsv.Write(w, election.Candidates, election.Votes)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path, nil
}

func (s *Storage) SaveSummaryJSON(ctx context.Context, summary entity.ElectionSummary, ts string) (string, error) {
	const op = "storage.files.SaveSummaryJSON"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.writeArtifact(s.dataName("election_%s_processed_%s.json", summary.ElectionID, ts), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path, nil
}

func (s *Storage) SaveSummaryCSV(ctx context.Context, summary entity.ElectionSummary, ts string) (string, error) {
	const op = "storage.files.SaveSummaryCSV"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.writeArtifact(s.dataName("election_%s_%s.csv", summary.ElectionID, ts), func(w io.Writer) error {
		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"Title", "Description", "Total Votes"})
		for _, r := range summary.Results {
			_ = writer.Write([]string{r.Title, r.Description, strconv.Itoa(r.TotalVotes)})
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path, nil
}

// RawVoteFiles lists raw votes files in lexical order, which is also
// chronological for one election.
func (s *Storage) RawVoteFiles(ctx context.Context) ([]string, error) {
	const op = "storage.files.RawVoteFiles"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	matches, err := filepath.Glob(filepath.Join(s.dataDir, RawVotesPattern))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sort.Strings(matches)

	return matches, nil
}

func (s *Storage) ReadRawVotes(ctx context.Context, path string) (votescsv.Ballots, error) {
	const op = "storage.files.ReadRawVotes"

	if err := ctx.Err(); err != nil {
		return votescsv.Ballots{}, fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return votescsv.Ballots{}, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	ballots, err := votescsv.Read(bufio.NewReader(f))
	if err != nil {
		return votescsv.Ballots{}, fmt.Errorf("%s: %s: %w", op, filepath.Base(path), err)
	}

	return ballots, nil
}

// SaveReport writes a Markdown report named <kind>_<electionName>_<ts>.md.
func (s *Storage) SaveReport(ctx context.Context, kind, electionName, ts, content string) (string, error) {
	const op = "storage.files.SaveReport"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	name := filepath.Join(s.reportDir, fmt.Sprintf("%s_%s_%s.md", kind, electionName, ts))
	path, err := s.writeArtifact(name, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path, nil
}

// ElectionName extracts the election identifier from a raw votes file
// name: the second "_"-separated token of election_<id>_raw_votes_<ts>.csv.
func ElectionName(path string) (string, error) {
	parts := strings.Split(filepath.Base(path), "_")
	if len(parts) < 4 || parts[0] != "election" || parts[1] == "" {
		return "", fmt.Errorf("%w: %s", storage.ErrBadFileName, filepath.Base(path))
	}
	return parts[1], nil
}

func (s *Storage) dataName(format, id, ts string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf(format, id, ts))
}

func (s *Storage) writeArtifact(path string, write func(w io.Writer) error) (string, error) {
	f, path, err := createExclusive(path)
	if err != nil {
		return "", err
	}

	bw := bufio.NewWriter(f)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}

func createExclusive(path string) (*os.File, string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 0; i < maxNameSuffix; i++ {
		candidate := path
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}

		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}

	return nil, "", fmt.Errorf("%w: %s", storage.ErrNoFreeName, filepath.Base(path))
}
