// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openplates/platewatch/internal/history"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage advocacy campaign hashtags",
	Long: `Campaign manages hashtags that group vehicles for advocacy reporting.
Messages containing a registered hashtag associate every looked-up vehicle
with the campaign, and responses lead with the campaign's running totals.`,
}

var campaignAddCmd = &cobra.Command{
	Use:   "add <hashtag>",
	Short: "Register a campaign hashtag",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignAdd,
}

var campaignShowCmd = &cobra.Command{
	Use:   "show <hashtag>",
	Short: "Show a campaign's vehicle and ticket totals",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignShow,
}

func runCampaignAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	c, err := store.AddCampaign(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Campaign #%s registered.\n", c.Hashtag)
	return nil
}

func runCampaignShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	campaigns, err := store.MatchCampaigns(ctx, []string{args[0]})
	if err != nil {
		return err
	}
	if len(campaigns) == 0 {
		return fmt.Errorf("no campaign registered for %q", args[0])
	}

	summary, err := store.CampaignSummary(ctx, campaigns[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "#%s: %d vehicle(s), %d ticket(s)\n",
		summary.Hashtag, summary.VehicleCount, summary.TicketCount)
	return nil
}

func openStore(cmd *cobra.Command) (*history.Store, error) {
	return history.Open(loadConfig().Storage, newLogger(cmd))
}

func init() {
	campaignCmd.AddCommand(campaignAddCmd)
	campaignCmd.AddCommand(campaignShowCmd)
	rootCmd.AddCommand(campaignCmd)
}
