// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package respond renders an aggregate into a sequence of strings sized
// for the outbound channel. The transport layer owns actual posting; this
// package only guarantees that every emitted string, prefixed with the
// caller's mention and one space, fits within MaxLength.
package respond

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openplates/platewatch/pkg/types"
)

// MaxLength is the hard per-string ceiling, mention prefix included.
const MaxLength = 280

const dateLayout = "January 2, 2006"

// Delta carries the "since last queried" narrative inputs. PreviousLink is
// empty when the originating post could not be confirmed to still exist.
type Delta struct {
	NewViolations int
	PreviousAt    time.Time
	PreviousLink  string
}

// Input is everything the chunker needs for one vehicle.
type Input struct {
	Aggregate types.AggregateResult

	// QueryCount is how many countable lookups this vehicle has had,
	// including the current one.
	QueryCount int

	Delta     *Delta
	Campaigns []types.CampaignSummary
}

// Chunker splits a vehicle's results into channel-sized strings.
type Chunker struct {
	mention string
	budget  int
}

// New builds a Chunker for one outbound reply. mention is prepended (with
// one space) to every emitted string by the transport layer, so its length
// counts against every chunk's budget.
func New(mention string) *Chunker {
	budget := MaxLength
	if mention != "" {
		budget -= len(mention) + 1
	}
	return &Chunker{mention: mention, budget: budget}
}

// NoTicketsMessage is the single-string reply for a vehicle with no
// matched violations.
func NoTicketsMessage(plate, state string) string {
	return fmt.Sprintf("I couldn't find any tickets for %s:%s.", state, plate)
}

// Build renders the full chunk sequence for one vehicle: campaign
// summaries first, then the violation summary, year, borough, and fine
// breakdowns, then the streak narrative. A vehicle with zero violations
// gets the canned no-tickets string and nothing else.
func (c *Chunker) Build(in Input) []string {
	agg := in.Aggregate
	if agg.TotalCount == 0 {
		chunks := c.CampaignChunks(in.Campaigns)
		return append(chunks, NoTicketsMessage(agg.Plate, agg.State))
	}

	tag := vehicleTag(agg)
	chunks := c.CampaignChunks(in.Campaigns)

	chunks = c.section(chunks,
		c.summaryHeader(in, tag),
		fmt.Sprintf("Parking and camera violation tickets for %s, cont'd:\n\n", tag),
		countLines(agg.ByViolation))

	chunks = c.section(chunks,
		fmt.Sprintf("Violations by year for %s:\n\n", tag),
		fmt.Sprintf("Violations by year for %s, cont'd:\n\n", tag),
		countLines(agg.ByYear))

	chunks = c.section(chunks,
		fmt.Sprintf("Violations by borough for %s:\n\n", tag),
		fmt.Sprintf("Violations by borough for %s, cont'd:\n\n", tag),
		countLines(agg.ByBorough))

	if agg.Fines.Any() {
		chunks = c.section(chunks,
			fmt.Sprintf("Known fines for %s:\n\n", tag),
			fmt.Sprintf("Known fines for %s, cont'd:\n\n", tag),
			fineLines(agg.Fines))
	}

	if agg.CameraStreak != nil {
		chunks = c.section(chunks, "", "", []string{streakNarrative(agg.CameraStreak)})
	}
	return chunks
}

// section runs the shared overflow algorithm: seed an accumulator with the
// section header, append lines until the budget would be exceeded, flush
// and reseed with the continuation header, and flush whatever remains.
func (c *Chunker) section(chunks []string, header, contHeader string, lines []string) []string {
	if len(lines) == 0 {
		return chunks
	}
	cur := header
	for _, line := range lines {
		if cur != "" && len(cur)+len(line) > c.budget {
			chunks = append(chunks, strings.TrimRight(cur, "\n"))
			cur = contHeader
		}
		cur += line
	}
	if cur != "" {
		chunks = append(chunks, strings.TrimRight(cur, "\n"))
	}
	return chunks
}

// CampaignChunks renders one chunk per matched advocacy campaign. Callers
// with multiple vehicles in one message prepend these as their own part.
func (c *Chunker) CampaignChunks(campaigns []types.CampaignSummary) []string {
	var chunks []string
	for _, campaign := range campaigns {
		line := fmt.Sprintf("%d %s in #%s %s been queried, with %d %s between them.\n",
			campaign.VehicleCount, plural(campaign.VehicleCount, "vehicle", "vehicles"),
			campaign.Hashtag,
			plural(campaign.VehicleCount, "has", "have"),
			campaign.TicketCount, plural(campaign.TicketCount, "ticket", "tickets"))
		chunks = c.section(chunks, "", "", []string{line})
	}
	return chunks
}

func (c *Chunker) summaryHeader(in Input, tag string) string {
	var b strings.Builder
	if in.QueryCount > 0 {
		fmt.Fprintf(&b, "%s has been queried %d %s.\n\n",
			tag, in.QueryCount, plural(in.QueryCount, "time", "times"))
	}
	if in.Delta != nil {
		fmt.Fprintf(&b, "Since the last lookup on %s, this vehicle has received %d new %s.",
			in.Delta.PreviousAt.Format(dateLayout),
			in.Delta.NewViolations,
			plural(in.Delta.NewViolations, "ticket", "tickets"))
		if in.Delta.PreviousLink != "" {
			fmt.Fprintf(&b, " Previous results: %s", in.Delta.PreviousLink)
		}
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Total parking and camera violation tickets: %d\n\n", in.Aggregate.TotalCount)
	return b.String()
}

// countLines renders one breakdown with its counts left-aligned in a
// column sized once per section.
func countLines(entries []types.CountEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	longest := 0
	for _, e := range entries {
		if n := len(strconv.Itoa(e.Count)); n > longest {
			longest = n
		}
	}
	width := 2*longest + 1

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%-*s| %s\n", width, strconv.Itoa(e.Count), e.Label))
	}
	return lines
}

// fineLines renders the monetary breakdown with the same column scheme,
// sized on the rendered dollar amounts.
func fineLines(fines types.FineBreakdown) []string {
	entries := []struct {
		label  string
		amount float64
	}{
		{"Fined", fines.Fined},
		{"Reduced", fines.Reduced},
		{"Paid", fines.Paid},
		{"Outstanding", fines.Outstanding},
	}

	longest := 0
	rendered := make([]string, len(entries))
	for i, e := range entries {
		rendered[i] = "$" + money(e.amount)
		if len(rendered[i]) > longest {
			longest = len(rendered[i])
		}
	}
	width := 2*longest + 1

	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%-*s| %s\n", width, rendered[i], e.label))
	}
	return lines
}

func streakNarrative(streak *types.StreakWindow) string {
	return fmt.Sprintf("This vehicle received %d camera %s between %s and %s, its busiest twelve months on record.\n",
		streak.Count, plural(streak.Count, "violation", "violations"),
		streak.Start.Format(dateLayout), streak.End.Format(dateLayout))
}

func vehicleTag(agg types.AggregateResult) string {
	return "#" + agg.State + "_" + agg.Plate
}

// money renders an amount with thousands separators and two decimals.
func money(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	neg := false
	if strings.HasPrefix(whole, "-") {
		neg = true
		whole = whole[1:]
	}
	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
