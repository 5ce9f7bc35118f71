package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matheus3301/pairchat/internal/client"
	"github.com/matheus3301/pairchat/internal/profile"
	"github.com/matheus3301/pairchat/internal/wire"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var passwordStdin bool

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account on the daemon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword()
		if err != nil {
			return err
		}
		c, _, err := dial(false)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Account.Register(ctx, &wire.RegisterRequest{Username: args[0], Password: password})
		if err != nil {
			return rpcError(err)
		}
		if jsonOutput() {
			outputJSON(resp)
			return nil
		}
		fmt.Printf("Registered %s (user %d).\n", args[0], resp.UserID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and save the session token for this profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword()
		if err != nil {
			return err
		}
		c, name, err := dial(false)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := callContext(cmd)
		defer cancel()
		resp, err := c.Account.Login(ctx, &wire.LoginRequest{Username: args[0], Password: password})
		if err != nil {
			return rpcError(err)
		}
		if err := profile.EnsureDir(name); err != nil {
			return err
		}
		if err := client.SaveToken(profile.TokenPath(name), resp.Token); err != nil {
			return err
		}
		if jsonOutput() {
			outputJSON(map[string]any{"user_id": resp.UserID, "expires_at_unix_ms": resp.ExpiresAtUnixMs})
			return nil
		}
		fmt.Printf("Logged in as %s until %s.\n", args[0], time.UnixMilli(resp.ExpiresAtUnixMs).Local().Format(time.DateTime))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := activeProfile()
		if err != nil {
			return err
		}
		if err := os.Remove(profile.TokenPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{registerCmd, loginCmd} {
		cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin without prompting")
	}
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
}

// readPassword reads one line from stdin, prompting unless --password-stdin
// is set. PAIRCHAT_PASSWORD takes precedence when present.
func readPassword() (string, error) {
	if p := viper.GetString("password"); p != "" {
		return p, nil
	}
	if !passwordStdin {
		fmt.Fprint(os.Stderr, "Password: ")
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
