// Package console prints human readable run summaries to a terminal.
package console

import (
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"io"
	"path/filepath"
	"strings"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	warn    = color.New(color.FgYellow)
	fail    = color.New(color.FgRed)
	good    = color.New(color.FgGreen)
)

type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Election prints the name, budget and candidate totals of a fetched election.
func (p *Printer) Election(summary entity.ElectionSummary) {
	heading.Fprintf(p.w, "Election: %s\n", summary.ElectionName)
	fmt.Fprintf(p.w, "ID: %s\n", summary.ElectionID)
	fmt.Fprintf(p.w, "Budget: %s\n", humanize.Comma(int64(summary.Budget)))

	for _, r := range summary.Results {
		fmt.Fprintf(p.w, "  %s: %s\n", r.Title, humanize.Comma(int64(r.TotalVotes)))
	}
	fmt.Fprintln(p.w)
}

// Skipped prints an election that produced no summary.
func (p *Printer) Skipped(electionID string, err error) {
	fail.Fprintf(p.w, "Election %s skipped: %v\n\n", electionID, err)
}

// Duplicates prints every duplicated voter of one raw votes file with the
// ids of the votes they cast.
func (p *Printer) Duplicates(source string, duplicates []entity.VoterHistory) {
	heading.Fprintf(p.w, "File: %s\n", filepath.Base(source))

	if len(duplicates) == 0 {
		good.Fprintln(p.w, "No duplicate votes")
		fmt.Fprintln(p.w)
		return
	}

	warn.Fprintf(p.w, "Voters with duplicate votes: %d\n", len(duplicates))
	for _, h := range duplicates {
		ids := make([]string, 0, len(h.Records))
		for _, r := range h.Records {
			ids = append(ids, r.VoteID)
		}
		fmt.Fprintf(p.w, "  %s: %d votes (%s)\n", h.VoterID, len(h.Records), strings.Join(ids, ", "))
	}
	fmt.Fprintln(p.w)
}
