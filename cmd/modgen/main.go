package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/walteh/modgen/cmd/modgen/apply"
	"github.com/walteh/modgen/cmd/modgen/languages"
	"github.com/walteh/modgen/cmd/modgen/menu"
	mdebug "github.com/walteh/modgen/pkg/debug"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var verbose bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "modgen",
		Short:         "Toggle declaration modifiers in Haxe and ActionScript sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (.yaml, .yml or .hcl)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger := mdebug.NewLogger(os.Stderr, verbose, isatty.IsTerminal(os.Stderr.Fd()))
		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(menu.NewMenuCommand(&configPath))
	rootCmd.AddCommand(apply.NewApplyCommand(&configPath))
	rootCmd.AddCommand(languages.NewLanguagesCommand(&configPath))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
