package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "Graft checks the contracts of component trees",
	Long: `Graft lints a project of unit and module manifests: every unit's
optional inputs must mirror its defaults, connected units must slice their
inputs into disjoint state/own/dispatch roles, and the domain-module tree
must mirror the state tree it manages.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the graft project")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// openProject builds a Project from the shared flags, honoring a positional
// directory argument the way most commands accept one.
func openProject(cmd *cobra.Command, args []string, opts ...graft.Option) (*graft.Project, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}

	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	opts = append([]graft.Option{graft.WithLogger(logging.New(level))}, opts...)

	return graft.Open(dir, opts...)
}
