package report

import (
	"bytes"
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/14kear/qv-duplicate-report/internal/services/dedup"
	"github.com/dustin/go-humanize"
	"text/template"
	"time"
)

const generatedLayout = "2006-01-02 15:04:05"

var funcs = template.FuncMap{
	"count": func(n int) string { return humanize.Comma(int64(n)) },
	"inc":   func(n int) int { return n + 1 },
}

var statisticsTmpl = template.Must(template.New("statistics").Funcs(funcs).Parse(`# Vote Statistics Report: {{.Election}}
Generated at: {{.Generated}}

## Votes
- Total votes: {{count .Stats.TotalVotes}}
- Votes after removing duplicates: {{count .Stats.UniqueVotes}}
- Duplicate votes: {{count .Stats.DuplicateVotes}}

## Voters
- Total voters: {{count .Stats.UniqueVoters}}
- Voters with duplicate votes: {{count .Stats.DuplicateVoters}}

## Impact of Duplicates
- Increase in vote count caused by duplicates: {{.Rate}}
`))

var duplicatesTmpl = template.Must(template.New("duplicates").Funcs(funcs).Parse(`# Duplicate Votes Report: {{.Election}}
Generated at: {{.Generated}}

## Summary
- Voters with duplicate votes: {{count .Voters}}
- Votes cast by those voters: {{count .Votes}}

## Duplicate Vote Details
{{range .Entries}}
### Voter ID: {{.VoterID}}
Number of votes: {{len .Ballots}}
{{range $i, $b := .Ballots}}
#### Vote {{inc $i}}{{if $b.Kept}} (counted){{end}}
- Vote ID: {{$b.VoteID}}
- TTL: {{$b.TTL}}
- Votes:
{{- range $b.Lines}}
  - {{.Candidate}}: {{count .Weight}}
{{- end}}
{{end}}{{end}}`))

// Generator renders Markdown reports from resolver output.
type Generator struct {
	now func() time.Time
}

func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

type statisticsView struct {
	Election  string
	Generated string
	Stats     entity.DuplicateStats
	Rate      string
}

// Statistics renders the duplicate statistics report. The increase rate is
// duplicate votes over unique votes; with no unique votes it reads N/A.
func (g *Generator) Statistics(electionName string, stats entity.DuplicateStats) (string, error) {
	const op = "report.Generator.Statistics"

	rate := "N/A"
	if r, ok := stats.IncreaseRate(); ok {
		rate = fmt.Sprintf("%.1f%%", r)
	}

	var buf bytes.Buffer
	err := statisticsTmpl.Execute(&buf, statisticsView{
		Election:  electionName,
		Generated: g.now().Format(generatedLayout),
		Stats:     stats,
		Rate:      rate,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return buf.String(), nil
}

type voteLine struct {
	Candidate string
	Weight    int
}

type ballotView struct {
	VoteID string
	TTL    int64
	Kept   bool
	Lines  []voteLine
}

type voterView struct {
	VoterID string
	Ballots []ballotView
}

type duplicatesView struct {
	Election  string
	Generated string
	Voters    int
	Votes     int
	Entries   []voterView
}

// Duplicates renders every record of every duplicated voter. candidates are
// the titles in column order; zero weights are left out. The record that
// dedup keeps is marked as counted.
func (g *Generator) Duplicates(electionName string, candidates []string, duplicates []entity.VoterHistory) (string, error) {
	const op = "report.Generator.Duplicates"

	view := duplicatesView{
		Election:  electionName,
		Generated: g.now().Format(generatedLayout),
		Voters:    len(duplicates),
		Entries:   make([]voterView, 0, len(duplicates)),
	}

	for _, h := range duplicates {
		kept := dedup.Latest(h)
		marked := false
		voter := voterView{VoterID: h.VoterID}

		for _, r := range h.Records {
			ballot := ballotView{VoteID: r.VoteID, TTL: r.TTL}
			// identical rows can repeat; only the first one is counted
			if !marked && r.VoteID == kept.VoteID && r.TTL == kept.TTL {
				ballot.Kept = true
				marked = true
			}
			for idx, title := range candidates {
				if w := r.Weight(idx); w > 0 {
					ballot.Lines = append(ballot.Lines, voteLine{Candidate: title, Weight: w})
				}
			}
			voter.Ballots = append(voter.Ballots, ballot)
		}

		view.Votes += len(h.Records)
		view.Entries = append(view.Entries, voter)
	}

	var buf bytes.Buffer
	if err := duplicatesTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return buf.String(), nil
}
