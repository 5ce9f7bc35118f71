package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/pairchat/internal/config"
	"github.com/matheus3301/pairchat/internal/profile"
	"github.com/spf13/cobra"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit ~/.pairchat/config.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := profile.ConfigPath()
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(profile.ConfigPath())
		if err != nil {
			return err
		}
		if jsonOutput() {
			outputJSON(cfg)
			return nil
		}
		return toml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

var configDefaultProfileCmd = &cobra.Command{
	Use:   "default-profile <name>",
	Short: "Set the profile used when --profile is not given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.ValidateName(args[0]); err != nil {
			return err
		}
		path := profile.ConfigPath()
		cfg, err := config.LoadOrDefault(path)
		if err != nil {
			return err
		}
		cfg.DefaultProfile = args[0]
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Default profile set to %s.\n", args[0])
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd, configDefaultProfileCmd)
	rootCmd.AddCommand(configCmd)
}
