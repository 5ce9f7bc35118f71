package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/matheus3301/pairchat/internal/wire"
	"github.com/spf13/cobra"
)

var proposeCmd = &cobra.Command{
	Use:   "propose <username>",
	Short: "Propose a connection to another user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Connection.Propose(ctx, &wire.ProposeRequest{TargetUsername: args[0]})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		fmt.Printf("Request %s sent to %s.\n", resp.RequestID, args[0])
		return nil
	},
}

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List connection requests",
}

var incomingCmd = &cobra.Command{
	Use:   "incoming",
	Short: "List pending requests addressed to you",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Connection.ListIncoming(ctx, &wire.ListIncomingRequest{})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		if len(resp.Requests) == 0 {
			fmt.Println("No pending requests.")
			return nil
		}
		table := newTable(os.Stdout, "Request", "From", "Sent")
		for _, r := range resp.Requests {
			table.Append([]string{r.RequestID, r.ProposerName, formatMillis(r.CreatedAtUnixMs)})
		}
		table.Render()
		return nil
	},
}

var outgoingCmd = &cobra.Command{
	Use:   "outgoing",
	Short: "List requests you proposed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Connection.ListOutgoing(ctx, &wire.ListOutgoingRequest{})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		if len(resp.Requests) == 0 {
			fmt.Println("No requests sent.")
			return nil
		}
		table := newTable(os.Stdout, "Request", "To", "Status", "Sent")
		for _, r := range resp.Requests {
			table.Append([]string{r.RequestID, r.TargetName, r.Status, formatMillis(r.CreatedAtUnixMs)})
		}
		table.Render()
		return nil
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accept a pending request addressed to you",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		if _, err := c.Connection.Accept(ctx, &wire.AcceptRequest{RequestID: args[0]}); err != nil {
			return rpcError(err)
		}
		fmt.Printf("Request %s accepted.\n", args[0])
		return nil
	},
}

var declineCmd = &cobra.Command{
	Use:   "decline <request-id>",
	Short: "Decline a pending request addressed to you",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		if _, err := c.Connection.Decline(ctx, &wire.DeclineRequest{RequestID: args[0]}); err != nil {
			return rpcError(err)
		}
		fmt.Printf("Request %s declined.\n", args[0])
		return nil
	},
}

var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "List users you are connected to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Connection.ListPartners(ctx, &wire.ListPartnersRequest{})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		if len(resp.Partners) == 0 {
			fmt.Println("No connections yet.")
			return nil
		}
		table := newTable(os.Stdout, "User ID", "Username")
		for _, p := range resp.Partners {
			table.Append([]string{strconv.FormatInt(p.UserID, 10), p.Username})
		}
		table.Render()
		return nil
	},
}

var connectedCmd = &cobra.Command{
	Use:   "connected <username>",
	Short: "Check whether you are connected to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Connection.IsConnected(ctx, &wire.IsConnectedRequest{PartnerUsername: args[0]})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		fmt.Printf("Connected: %v\n", resp.Connected)
		return nil
	},
}

func init() {
	requestsCmd.AddCommand(incomingCmd, outgoingCmd)
	rootCmd.AddCommand(proposeCmd, requestsCmd, acceptCmd, declineCmd, partnersCmd, connectedCmd)
}
