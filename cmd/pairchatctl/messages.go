package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matheus3301/pairchat/internal/wire"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

var sendCmd = &cobra.Command{
	Use:   "send <username> <text...>",
	Short: "Send a message to a connected user",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Conversation.Send(ctx, &wire.SendRequest{
			PartnerUsername: args[0],
			Text:            strings.Join(args[1:], " "),
		})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		if resp.Noop {
			fmt.Println("Nothing to send.")
			return nil
		}
		fmt.Printf("Sent message %d at %s.\n", resp.Message.ID, formatMillis(resp.Message.TimestampUnixMs))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <username>",
	Short: "Show the conversation with a connected user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Conversation.History(ctx, &wire.HistoryRequest{PartnerUsername: args[0]})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		if len(resp.Messages) == 0 {
			fmt.Println("No messages.")
			return nil
		}
		partners, err := c.Connection.ListPartners(ctx, &wire.ListPartnersRequest{})
		if err != nil {
			return rpcError(err)
		}
		var partnerID int64
		for _, p := range partners.Partners {
			if p.Username == args[0] {
				partnerID = p.UserID
			}
		}

		table := newTable(os.Stdout, "Time", "From", "Text")
		for _, m := range resp.Messages {
			from := "me"
			if m.SenderID == partnerID {
				from = args[0]
			}
			table.Append([]string{formatMillis(m.TimestampUnixMs), from, m.Text})
		}
		table.Render()
		return nil
	},
}

var lastCmd = &cobra.Command{
	Use:   "last <username>",
	Short: "Show the latest message exchanged with a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Conversation.LastMessage(ctx, &wire.LastMessageRequest{PartnerUsername: args[0]})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		if resp.Message == nil {
			fmt.Println("No messages.")
			return nil
		}
		fmt.Printf("[%s] %s\n", formatMillis(resp.Message.TimestampUnixMs), resp.Message.Text)
		return nil
	},
}

var unreadCmd = &cobra.Command{
	Use:   "unread <username>",
	Short: "Count messages received from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Conversation.UnreadCount(ctx, &wire.UnreadCountRequest{PartnerUsername: args[0]})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		fmt.Printf("Unread from %s: %d\n", args[0], resp.Count)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream connection and message events until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := dial(true)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		stream, err := c.Conversation.WatchEvents(cmd.Context(), &wire.WatchEventsRequest{})
		if err != nil {
			return rpcError(err)
		}
		for {
			evt, err := stream.Recv()
			if errors.Is(err, io.EOF) || grpcstatus.Code(err) == codes.Canceled {
				return nil
			}
			if err != nil {
				return rpcError(err)
			}
			if jsonOutput() {
				outputJSON(evt)
				continue
			}
			printEvent(evt)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd, historyCmd, lastCmd, unreadCmd, watchCmd)
}

func printEvent(evt *wire.Event) {
	at := formatMillis(evt.TimestampUnixMs)
	switch {
	case evt.Connection != nil:
		fmt.Printf("%s %s request=%s proposer=%d target=%d\n",
			at, evt.Kind, evt.Connection.RequestID, evt.Connection.ProposerID, evt.Connection.TargetID)
	case evt.Message != nil:
		fmt.Printf("%s %s id=%d from=%d to=%d\n",
			at, evt.Kind, evt.Message.MessageID, evt.Message.SenderID, evt.Message.ReceiverID)
	default:
		fmt.Printf("%s %s\n", at, evt.Kind)
	}
}
