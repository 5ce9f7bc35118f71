package main

import (
	"fmt"
	"time"

	"github.com/matheus3301/pairchat/internal/wire"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(false)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Daemon.Status(ctx, &wire.StatusRequest{})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		fmt.Printf("Profile:  %s\n", resp.Profile)
		fmt.Printf("State:    %s\n", resp.State)
		fmt.Printf("Uptime:   %s\n", (time.Duration(resp.UptimeMs) * time.Millisecond).Round(time.Second))
		fmt.Printf("Users:    %d\n", resp.UserCount)
		fmt.Printf("Requests: %d\n", resp.RequestCount)
		fmt.Printf("Messages: %d\n", resp.MessageCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
