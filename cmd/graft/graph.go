package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/graft/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [dir]",
	Short: "Export the project structure as Mermaid diagrams",
	Long:  `Outputs Mermaid diagrams of the unit composition tree and the domain-module tree, as markdown.`,
	Run: func(cmd *cobra.Command, args []string) {
		project, err := openProject(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening project: %v\n", err)
			os.Exit(1)
		}

		output, err := graph.Project(project)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building graph: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
