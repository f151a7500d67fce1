// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openplates/platewatch/pkg/types"
)

// Campaign is one advocacy campaign hashtag.
type Campaign struct {
	ID      int64
	Hashtag string
}

// AddCampaign registers a hashtag. Adding an existing hashtag returns the
// existing row.
func (s *Store) AddCampaign(ctx context.Context, hashtag string) (Campaign, error) {
	hashtag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hashtag), "#"))
	if hashtag == "" {
		return Campaign{}, fmt.Errorf("campaign hashtag is empty")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO campaigns (hashtag, created_at) VALUES (?, ?)
		 ON CONFLICT(hashtag) DO NOTHING`,
		hashtag, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return Campaign{}, fmt.Errorf("adding campaign: %w", err)
	}

	var c Campaign
	err = s.db.QueryRowContext(ctx,
		`SELECT id, hashtag FROM campaigns WHERE hashtag = ?`, hashtag,
	).Scan(&c.ID, &c.Hashtag)
	if err != nil {
		return Campaign{}, fmt.Errorf("reading campaign: %w", err)
	}
	return c, nil
}

// MatchCampaigns returns the registered campaigns among the given
// hashtags, in hashtag order.
func (s *Store) MatchCampaigns(ctx context.Context, hashtags []string) ([]Campaign, error) {
	var matched []Campaign
	for _, tag := range hashtags {
		tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
		var c Campaign
		err := s.db.QueryRowContext(ctx,
			`SELECT id, hashtag FROM campaigns WHERE hashtag = ?`, tag,
		).Scan(&c.ID, &c.Hashtag)
		if err == nil {
			matched = append(matched, c)
			continue
		}
		if !isNoRows(err) {
			return nil, fmt.Errorf("matching campaign %q: %w", tag, err)
		}
	}
	return matched, nil
}

// AttachVehicle associates a vehicle and its latest ticket count with a
// campaign, updating the count on repeat lookups.
func (s *Store) AttachVehicle(ctx context.Context, campaignID int64, plate, state, plateTypes string, ticketCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO campaign_vehicles
			(campaign_id, plate, state, plate_types, ticket_count, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(campaign_id, plate, state, plate_types)
		 DO UPDATE SET ticket_count = excluded.ticket_count, updated_at = excluded.updated_at`,
		campaignID, plate, state, plateTypes, ticketCount,
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("attaching vehicle to campaign: %w", err)
	}
	return nil
}

// CampaignSummary aggregates a campaign's vehicles and tickets.
func (s *Store) CampaignSummary(ctx context.Context, c Campaign) (types.CampaignSummary, error) {
	summary := types.CampaignSummary{Hashtag: c.Hashtag}
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), coalesce(sum(ticket_count), 0)
		 FROM campaign_vehicles WHERE campaign_id = ?`,
		c.ID,
	).Scan(&summary.VehicleCount, &summary.TicketCount)
	if err != nil {
		return types.CampaignSummary{}, fmt.Errorf("summarizing campaign: %w", err)
	}
	return summary, nil
}
