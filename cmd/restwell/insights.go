package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/restwell/restwell/internal/history"
	"github.com/restwell/restwell/internal/insights"
)

// runInsights computes a full insight response from an exported history
// file without touching the store. Useful for support and for inspecting
// what a user's dashboard would show.
func runInsights(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("history")
	if path == "" {
		return fmt.Errorf("--history is required")
	}
	userID, _ := cmd.Flags().GetString("user")
	days, _ := cmd.Flags().GetInt("days")

	hist, err := history.LoadFile(path)
	if err != nil {
		return err
	}

	engine := insights.NewEngine(insights.DefaultSettings())
	resp := engine.Compute(userID, hist, days)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
