package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/graft"
)

var describeCmd = &cobra.Command{
	Use:   "describe [unit]",
	Short: "Show a unit's derived contract",
	Long: `Without arguments, lists every unit with its input split. With a unit
name, prints the full derived contract: inputs, defaults, shapes, children
and, for connected units, the role slices.`,
	Run: func(cmd *cobra.Command, args []string) {
		project, err := openProject(cmd, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening project: %v\n", err)
			os.Exit(1)
		}
		jsonOut, _ := cmd.Flags().GetBool("json")

		if len(args) == 0 {
			listUnits(project, jsonOut)
			return
		}

		detail, err := project.Describe(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOut {
			printJSON(detail)
			return
		}
		printDetail(detail)
	},
}

func listUnits(project *graft.Project, jsonOut bool) {
	units := project.Units()
	if jsonOut {
		printJSON(units)
		return
	}
	for _, u := range units {
		kind := "plain"
		if u.Connected {
			kind = "connected"
		}
		fmt.Printf("%s\t%s\trequired(%s)\toptional(%s)\n",
			u.Name, kind, strings.Join(u.Required, ", "), strings.Join(u.Optional, ", "))
	}
}

func printDetail(d graft.UnitDetail) {
	fmt.Printf("Unit: %s\n", d.Name)
	for name, typ := range d.Inputs {
		role := "required"
		if _, ok := d.Defaults[name]; ok {
			role = "optional"
		}
		fmt.Printf("  input %s: %s (%s)\n", name, typ, role)
	}
	for name, v := range d.Defaults {
		fmt.Printf("  default %s = %v\n", name, v)
	}
	if len(d.Children) > 0 {
		fmt.Printf("  children: %s\n", strings.Join(d.Children, ", "))
	}
	if d.Slices != nil {
		fmt.Printf("  slices: state(%s) own(%s) dispatch(%s)\n",
			strings.Join(d.Slices.State, ", "),
			strings.Join(d.Slices.Own, ", "),
			strings.Join(d.Slices.Dispatch, ", "))
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("json", false, "Print as JSON")
}
