package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matheus3301/pairchat/internal/api"
	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/matheus3301/pairchat/internal/client"
	"github.com/matheus3301/pairchat/internal/config"
	"github.com/matheus3301/pairchat/internal/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	grpcstatus "google.golang.org/grpc/status"
)

const (
	profileFlag = "profile"
	listenFlag  = "listen"
	jsonFlag    = "json"
	timeoutFlag = "timeout"
)

var rootCmd = &cobra.Command{
	Use:           "pairchatctl",
	Short:         "Control a pairchat daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP(profileFlag, "p", "", "profile name (overrides config default)")
	_ = viper.BindPFlag(profileFlag, rootCmd.PersistentFlags().Lookup(profileFlag))

	rootCmd.PersistentFlags().String(listenFlag, "", "daemon address: a socket path or tcp://host:port")
	_ = viper.BindPFlag(listenFlag, rootCmd.PersistentFlags().Lookup(listenFlag))

	rootCmd.PersistentFlags().Bool(jsonFlag, false, "output in JSON format")
	_ = viper.BindPFlag(jsonFlag, rootCmd.PersistentFlags().Lookup(jsonFlag))

	rootCmd.PersistentFlags().Duration(timeoutFlag, 10*time.Second, "per-call timeout")
	_ = viper.BindPFlag(timeoutFlag, rootCmd.PersistentFlags().Lookup(timeoutFlag))

	viper.SetEnvPrefix("PAIRCHAT")
	viper.AutomaticEnv()
}

// activeProfile resolves and validates the profile for this invocation.
func activeProfile() (string, error) {
	name := profile.Resolve(viper.GetString(profileFlag))
	if err := profile.ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// daemonTarget picks the dial target: --listen, then the config's listen
// setting, then the profile's socket.
func daemonTarget(name string) string {
	if listen := viper.GetString(listenFlag); listen != "" {
		return client.Target(listen)
	}
	if cfg, err := config.LoadOrDefault(profile.ConfigPath()); err == nil && cfg.Daemon.Listen != "" {
		return client.Target(cfg.Daemon.Listen)
	}
	return client.Target(profile.SocketPath(name))
}

// dial connects to the daemon of the active profile. With authed set it
// attaches the token saved by login.
func dial(authed bool) (*client.Client, string, error) {
	name, err := activeProfile()
	if err != nil {
		return nil, "", err
	}
	var token string
	if authed {
		token, err = client.LoadToken(profile.TokenPath(name))
		if errors.Is(err, client.ErrNoToken) {
			return nil, "", fmt.Errorf("%w for profile %q; run pairchatctl login", err, name)
		}
		if err != nil {
			return nil, "", err
		}
	}
	c, err := client.New(daemonTarget(name), token)
	if err != nil {
		return nil, "", fmt.Errorf("cannot connect to daemon for profile %q: %w", name, err)
	}
	return c, name, nil
}

func callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), viper.GetDuration(timeoutFlag))
}

// rpcError renders a daemon error with its kind when it carries one.
func rpcError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := grpcstatus.FromError(err)
	if !ok {
		return err
	}
	if kind := api.KindFromError(err); kind != apperr.KindUnknown {
		return fmt.Errorf("%s: %s", kind, st.Message())
	}
	return fmt.Errorf("%s: %s", st.Code(), st.Message())
}
