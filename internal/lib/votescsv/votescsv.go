// Package votescsv reads and writes the denormalized raw votes CSV: one row
// per vote record, one weight column per candidate.
//
//	Voter ID,Vote ID,Vote TTL,Votes for: Park,Votes for: Library
//	v1,a,100,3,0
package votescsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"io"
	"strconv"
	"strings"
)

const (
	ColumnVoterID = "Voter ID"
	ColumnVoteID  = "Vote ID"
	ColumnTTL     = "Vote TTL"

	// CandidatePrefix starts every per-candidate column header.
	CandidatePrefix = "Votes for: "

	fixedColumns = 3
)

var (
	ErrParse           = errors.New("votes csv parse error")
	ErrMalformedHeader = fmt.Errorf("%w: malformed header", ErrParse)
	ErrMalformedRow    = fmt.Errorf("%w: malformed row", ErrParse)
	ErrInvalidTTL      = fmt.Errorf("%w: invalid ttl", ErrParse)
	ErrInvalidWeight   = fmt.Errorf("%w: invalid vote weight", ErrParse)
)

// Ballots is the typed content of one raw votes file. Candidates holds the
// titles taken from the header, in column order.
type Ballots struct {
	Candidates []string
	Records    []entity.VoteRecord
}

func Header(candidates []entity.Candidate) []string {
	header := make([]string, 0, fixedColumns+len(candidates))
	header = append(header, ColumnVoterID, ColumnVoteID, ColumnTTL)
	for _, c := range candidates {
		header = append(header, CandidatePrefix+c.Title)
	}
	return header
}

// Write emits the header and one row per vote record. Candidates without an
// entry in a record are written as 0.
func Write(w io.Writer, candidates []entity.Candidate, votes []entity.VoteRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header(candidates)); err != nil {
		return err
	}

	row := make([]string, fixedColumns+len(candidates))
	for _, v := range votes {
		row[0] = v.VoterID
		row[1] = v.VoteID
		row[2] = strconv.FormatInt(v.TTL, 10)
		for i := range candidates {
			row[fixedColumns+i] = strconv.Itoa(v.Weight(i))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Read parses a raw votes file. Every field is validated; the first bad
// header or row aborts the read.
func Read(r io.Reader) (Ballots, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Ballots{}, fmt.Errorf("%w: empty file", ErrMalformedHeader)
	}
	if err != nil {
		return Ballots{}, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	candidates, err := parseHeader(header)
	if err != nil {
		return Ballots{}, err
	}

	ballots := Ballots{Candidates: candidates}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Ballots{}, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}

		line, _ := reader.FieldPos(0)
		record, err := parseRow(row, len(candidates))
		if err != nil {
			return Ballots{}, fmt.Errorf("line %d: %w", line, err)
		}
		ballots.Records = append(ballots.Records, record)
	}

	return ballots, nil
}

func parseHeader(header []string) ([]string, error) {
	if len(header) < fixedColumns {
		return nil, fmt.Errorf("%w: want at least %d columns, got %d", ErrMalformedHeader, fixedColumns, len(header))
	}

	// Files saved by spreadsheet tools may start with a byte order mark.
	first := strings.TrimPrefix(header[0], "\ufeff")
	if first != ColumnVoterID || header[1] != ColumnVoteID || header[2] != ColumnTTL {
		return nil, fmt.Errorf("%w: unexpected leading columns %q", ErrMalformedHeader, header[:fixedColumns])
	}

	candidates := make([]string, 0, len(header)-fixedColumns)
	for _, col := range header[fixedColumns:] {
		title, ok := strings.CutPrefix(col, CandidatePrefix)
		if !ok {
			return nil, fmt.Errorf("%w: column %q is not a candidate column", ErrMalformedHeader, col)
		}
		candidates = append(candidates, title)
	}

	return candidates, nil
}

func parseRow(row []string, candidates int) (entity.VoteRecord, error) {
	if len(row) != fixedColumns+candidates {
		return entity.VoteRecord{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedRow, fixedColumns+candidates, len(row))
	}

	voterID := row[0]
	if strings.TrimSpace(voterID) == "" {
		return entity.VoteRecord{}, fmt.Errorf("%w: empty voter id", ErrMalformedRow)
	}

	voteID := row[1]
	if strings.TrimSpace(voteID) == "" {
		return entity.VoteRecord{}, fmt.Errorf("%w: empty vote id", ErrMalformedRow)
	}

	ttl, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
	if err != nil {
		return entity.VoteRecord{}, fmt.Errorf("%w: %q", ErrInvalidTTL, row[2])
	}

	votes := make(map[int]int, candidates)
	for i := 0; i < candidates; i++ {
		raw := strings.TrimSpace(row[fixedColumns+i])
		weight, err := strconv.Atoi(raw)
		if err != nil || weight < 0 {
			return entity.VoteRecord{}, fmt.Errorf("%w: %q for candidate %d", ErrInvalidWeight, raw, i)
		}
		votes[i] = weight
	}

	return entity.VoteRecord{
		VoterID: voterID,
		VoteID:  voteID,
		TTL:     ttl,
		Votes:   votes,
	}, nil
}
