// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one lookup request end to end: extract
// vehicle references from the message text, query the violation datasets
// per vehicle, normalize and merge the records, aggregate, compute the
// repeat-lookup delta, persist, and chunk the response. Vehicles in one
// message run independently; one vehicle's failure never aborts its
// siblings, and output order follows input order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openplates/platewatch/internal/aggregate"
	"github.com/openplates/platewatch/internal/extract"
	"github.com/openplates/platewatch/internal/history"
	"github.com/openplates/platewatch/internal/normalize"
	"github.com/openplates/platewatch/internal/opendata"
	"github.com/openplates/platewatch/internal/respond"
	"github.com/openplates/platewatch/pkg/types"
)

const apologyMessage = "Sorry, something went wrong and I couldn't finish that lookup. " +
	"It's been recorded and we'll follow up."

// Pipeline wires the lookup stages together. All collaborators are
// injected; the process entry point owns their lifecycles.
type Pipeline struct {
	data       *opendata.Client
	normalizer *normalize.Normalizer
	store      *history.Store
	links      history.LinkChecker
	mention    string
	log        zerolog.Logger

	// LinkURL renders a channel-specific URL for a prior post, used in
	// delta narratives. Nil means narratives never carry a link.
	LinkURL func(messageID, sourceChannel string) string
}

// New builds a Pipeline. store and links may be nil: without a store,
// lookups still work but history features (deltas, query counts,
// campaigns) are silently disabled.
func New(data *opendata.Client, normalizer *normalize.Normalizer, store *history.Store, links history.LinkChecker, mention string, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		data:       data,
		normalizer: normalizer,
		store:      store,
		links:      links,
		mention:    mention,
		log:        log,
	}
}

// Lookup runs the per-vehicle core: fetch from every dataset, normalize,
// merge by summons number, aggregate. No persistence side effects.
func (p *Pipeline) Lookup(ctx context.Context, q types.PlateQuery) (types.AggregateResult, error) {
	raw, err := p.data.FetchAll(ctx, q)
	if err != nil {
		return types.AggregateResult{}, err
	}

	normalized := make([]types.NormalizedViolationRecord, 0, len(raw))
	for _, r := range raw {
		normalized = append(normalized, p.normalizer.Record(ctx, r))
	}

	set := aggregate.Merge(normalized)
	return aggregate.Result(q, set), nil
}

// Process handles one inbound message. It always returns a usable
// Response; unexpected panics surface as a single apology chunk and a
// recorded failure rather than an error to the transport layer.
func (p *Pipeline) Process(ctx context.Context, req LookupRequest) (resp types.Response) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().
				Interface("panic", r).
				Str("request_id", req.ID()).
				Msg("lookup pipeline panicked")
			p.recordFailure(ctx, req, fmt.Sprint(r))
			resp = types.Response{
				Parts:    [][]string{{apologyMessage}},
				HadError: true,
			}
		}
	}()

	tokens := req.StringTokens()
	refs := extract.Deduplicate(extract.References(tokens, req.LegacyStringTokens()))
	campaigns := p.matchCampaigns(ctx, extract.Hashtags(tokens))
	chunker := respond.New(p.mention)

	var parts [][]string
	hadError := false

	for _, ref := range refs {
		if !ref.Valid {
			parts = append(parts, []string{helpMessage(ref)})
			continue
		}

		q := types.NewPlateQuery(ref, req.CreatedAt(), req.UserID())
		p.log.Info().
			Str("plate", q.Plate).
			Str("state", q.State).
			Str("request_id", req.ID()).
			Msg("looking up vehicle")

		agg, err := p.Lookup(ctx, q)
		if err != nil {
			hadError = true
			p.log.Warn().Err(err).Str("plate", q.Plate).Str("state", q.State).Msg("vehicle lookup failed")
			p.recordFailure(ctx, req, err.Error())
			parts = append(parts, []string{failureMessage(q, err)})
			continue
		}

		in := respond.Input{Aggregate: agg}
		if p.store != nil {
			in.Delta = p.delta(ctx, q, agg, req)
			in.QueryCount = p.persist(ctx, q, agg, req, campaigns)
		}
		parts = append(parts, chunker.Build(in))
	}

	if summaries := p.campaignSummaries(ctx, campaigns); len(summaries) > 0 {
		if chunks := chunker.CampaignChunks(summaries); len(chunks) > 0 {
			parts = append([][]string{chunks}, parts...)
		}
	}

	return types.Response{Parts: parts, Success: true, HadError: hadError}
}

// delta computes the "since last queried" narrative inputs. Best effort:
// a history read failure costs the narrative, never the lookup.
func (p *Pipeline) delta(ctx context.Context, q types.PlateQuery, agg types.AggregateResult, req LookupRequest) *respond.Delta {
	d, err := p.store.ComputeDelta(ctx, q, agg.TotalCount, req.CreatedAt(), p.links)
	if err != nil {
		p.log.Warn().Err(err).Str("plate", q.Plate).Msg("delta calculation failed")
		return nil
	}
	if d == nil {
		return nil
	}

	out := &respond.Delta{
		NewViolations: d.NewViolations,
		PreviousAt:    d.Previous.CreatedAt,
	}
	if d.IncludeLink && p.LinkURL != nil {
		out.PreviousLink = p.LinkURL(d.Previous.MessageID, d.Previous.SourceChannel)
	}
	return out
}

// persist writes the stored lookup row, associates campaign vehicles, and
// returns the countable query total including this lookup.
func (p *Pipeline) persist(ctx context.Context, q types.PlateQuery, agg types.AggregateResult, req LookupRequest, campaigns []history.Campaign) int {
	abatement, seizure := history.EligibilityFlags(agg.CameraStreak)
	lookup := &types.StoredLookup{
		Plate:             q.Plate,
		State:             q.State,
		PlateTypes:        q.PlateTypes,
		TicketCount:       agg.TotalCount,
		Countable:         req.RequiresResponse(),
		MessageID:         req.ID(),
		SourceChannel:     req.SourceChannel(),
		RequesterID:       req.UserID(),
		AbatementEligible: abatement,
		SeizureEligible:   seizure,
		CreatedAt:         req.CreatedAt(),
	}
	if err := p.store.InsertLookup(ctx, lookup); err != nil {
		p.log.Error().Err(err).Str("plate", q.Plate).Msg("storing lookup failed")
	}

	for _, c := range campaigns {
		if err := p.store.AttachVehicle(ctx, c.ID, q.Plate, q.State, q.PlateTypes, agg.TotalCount); err != nil {
			p.log.Warn().Err(err).Str("hashtag", c.Hashtag).Msg("campaign vehicle association failed")
		}
	}

	count, err := p.store.CountableLookups(ctx, q.Plate, q.State, q.PlateTypes)
	if err != nil {
		p.log.Warn().Err(err).Str("plate", q.Plate).Msg("counting lookups failed")
		return 0
	}
	return count
}

func (p *Pipeline) matchCampaigns(ctx context.Context, hashtags []string) []history.Campaign {
	if p.store == nil || len(hashtags) == 0 {
		return nil
	}
	campaigns, err := p.store.MatchCampaigns(ctx, hashtags)
	if err != nil {
		p.log.Warn().Err(err).Msg("campaign matching failed")
		return nil
	}
	return campaigns
}

func (p *Pipeline) campaignSummaries(ctx context.Context, campaigns []history.Campaign) []types.CampaignSummary {
	var summaries []types.CampaignSummary
	for _, c := range campaigns {
		summary, err := p.store.CampaignSummary(ctx, c)
		if err != nil {
			p.log.Warn().Err(err).Str("hashtag", c.Hashtag).Msg("campaign summary failed")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func (p *Pipeline) recordFailure(ctx context.Context, req LookupRequest, msg string) {
	if p.store == nil {
		return
	}
	original := strings.Join(req.StringTokens(), " ")
	if err := p.store.RecordFailure(ctx, original, req.UserID(), req.SourceChannel(), msg); err != nil {
		p.log.Error().Err(err).Msg("recording failed lookup failed")
	}
}

// helpMessage turns an invalid reference into a targeted hint. References
// from the legacy marker syntax retain partial fields, which allows more
// specific messages than the colon-tuple form.
func helpMessage(ref types.VehicleReference) string {
	switch {
	case ref.State != "" && !extract.IsValidState(ref.State):
		return fmt.Sprintf("%q doesn't look like a state or province code I know. "+
			"Try a two-letter code like NY or NJ.", ref.State)
	case ref.State != "" && ref.Plate == "":
		return fmt.Sprintf("I couldn't find a plate number in %q. "+
			"Try something like NY:ABC1234.", ref.OriginalText)
	default:
		return fmt.Sprintf("I couldn't read %q as a plate. "+
			"Try NY:ABC1234, or plate:ABC1234 state:NY.", ref.OriginalText)
	}
}

// failureMessage turns a source-query failure into a plain-language chunk.
// Transient failures invite a retry; the rest do not promise one.
func failureMessage(q types.PlateQuery, err error) string {
	var qe *opendata.QueryError
	if errors.As(err, &qe) && qe.Transient() {
		return fmt.Sprintf("Sorry, the violation data source had trouble answering for %s:%s. "+
			"Please try again in a few minutes.", q.State, q.Plate)
	}
	return fmt.Sprintf("Sorry, I wasn't able to look up %s:%s.", q.State, q.Plate)
}
