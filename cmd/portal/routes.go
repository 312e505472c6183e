package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systra-connect/portal/pkg/navigation"
)

func routesCmd() *cobra.Command {
	var (
		resolve string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table or resolve a path",
		Long: `Print the compiled route table in match order, or resolve one path
against it.

Examples:
  portal routes
  portal routes --resolve /main
  portal routes --resolve /main/files/a/b --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := navigation.New()
			if err != nil {
				return err
			}
			if resolve != "" {
				return printResolution(cmd, table, resolve, asJSON)
			}
			return printRoutes(cmd, table)
		},
	}

	cmd.Flags().StringVarP(&resolve, "resolve", "r", "", "Resolve a path instead of listing routes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resolution as JSON")

	return cmd
}

func printRoutes(cmd *cobra.Command, table *navigation.Table) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tSTATE\tCOMPONENT\tLAYOUTS")
	for _, r := range table.Router().Routes() {
		component := r.Component
		switch {
		case r.Redirect != "":
			component = "-> " + r.Redirect
		case r.Lazy:
			component += " (lazy)"
		}
		layouts := strings.Join(r.Layouts, " > ")
		if layouts == "" {
			layouts = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Pattern, r.Name, component, layouts)
	}
	return tw.Flush()
}

func printResolution(cmd *cobra.Command, table *navigation.Table, path string, asJSON bool) error {
	res, err := table.Resolve(cmd.Context(), path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "State:     %s\n", res.State)
	fmt.Fprintf(out, "URL:       %s\n", res.URL())
	fmt.Fprintf(out, "Pattern:   %s\n", res.Pattern)
	fmt.Fprintf(out, "Chain:     %s\n", strings.Join(res.Chain, " > "))
	for _, from := range res.Redirects {
		fmt.Fprintf(out, "Redirect:  %s\n", from)
	}
	for _, name := range slices.Sorted(maps.Keys(res.Params)) {
		fmt.Fprintf(out, "Param:     %s=%q\n", name, res.Params[name])
	}
	return nil
}
