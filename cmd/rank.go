package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voltwise/stationmatch/config"
	"github.com/voltwise/stationmatch/core/engine"
	"github.com/voltwise/stationmatch/core/model"
)

// rankRequest is the snapshot file format: a full recommendation query with
// inline candidates.
type rankRequest struct {
	UserLocation model.Coordinate     `json:"user_location"`
	Vehicle      model.VehicleProfile `json:"vehicle"`
	Intent       string               `json:"intent"`
	Limit        int                  `json:"limit"`
	Candidates   []model.Facility     `json:"candidates"`
}

var rankCmd = &cobra.Command{
	Use:   "rank <snapshot.json>",
	Short: "Rank a candidate snapshot once and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  rank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func rank(cmd *cobra.Command, args []string) error {
	// The config file is optional here: ranking a snapshot only needs the
	// engine section, which has usable defaults.
	cfg := &config.Config{}
	if _, statErr := os.Stat(cfgPath); statErr == nil {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var req rankRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	intent, err := model.ParseIntent(req.Intent)
	if err != nil {
		return err
	}

	eng := engine.New(cfg.Engine, nil, nil)
	results, err := eng.RecommendAt(engine.Query{
		UserLocation: req.UserLocation,
		Vehicle:      req.Vehicle,
		Intent:       intent,
		Candidates:   req.Candidates,
	}, req.Limit, time.Now())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no reachable facility in snapshot")
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
