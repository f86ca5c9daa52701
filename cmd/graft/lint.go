package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/adapters/redis"
	"github.com/aretw0/graft/internal/presentation/tui"
)

var lintCmd = &cobra.Command{
	Use:   "lint [dir]",
	Short: "Check every contract in the project tree",
	Long: `Loads the project's unit and module manifests, derives each contract,
checks the connection slices and the domain/state mirroring, and prints the
findings. Exits non-zero when the report fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")
		jsonOut, _ := cmd.Flags().GetBool("json")
		pretty, _ := cmd.Flags().GetBool("pretty")
		cacheAddr, _ := cmd.Flags().GetString("cache")

		opts := []graft.Option{graft.WithStrict(strict)}
		if cacheAddr != "" {
			cache := redis.New(cacheAddr, "", 0)
			defer cache.Close()
			opts = append(opts, graft.WithCache(cache))
		}

		project, err := openProject(cmd, args, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening project: %v\n", err)
			os.Exit(1)
		}

		report, err := project.Check(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error checking project: %v\n", err)
			os.Exit(1)
		}

		switch {
		case jsonOut:
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
				os.Exit(1)
			}
		case pretty && term.IsTerminal(int(os.Stdout.Fd())):
			out, err := tui.Pretty(report)
			if err != nil {
				out = tui.Plain(report)
			}
			fmt.Print(out)
		default:
			fmt.Print(tui.Plain(report))
		}

		if err := report.Err(strict); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().Bool("strict", false, "Escalate warnings (mirroring drift) to failures")
	lintCmd.Flags().Bool("json", false, "Print the report as JSON")
	lintCmd.Flags().Bool("pretty", true, "Render the report as styled markdown on a TTY")
	lintCmd.Flags().String("cache", "", "Redis address for the report cache (e.g. localhost:6379)")
}
