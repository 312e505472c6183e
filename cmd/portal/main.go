package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		portalerrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "portal",
		Short: "Systra Connect portal front server",
		Long: `portal serves the Systra Connect web front: the page shell and its
navigation table, translation catalogs, and the project file explorer.

Besides the server it offers offline tools to inspect the route table,
resolve file icons, and check translation catalogs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || os.Getenv("NO_COLOR") != "" {
				portalerrors.DisableColors()
			}
		},
	}

	root.PersistentFlags().StringP("config", "C", ".", "Directory containing portal.json")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		serveCmd(),
		routesCmd(),
		iconCmd(),
		i18nCmd(),
		versionCmd(),
	)
	return root
}

// configDir returns the --config flag value.
func configDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("config")
	if dir == "" {
		return "."
	}
	return dir
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", portalerrors.Success("✓"), fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", portalerrors.Warning("⚠"), fmt.Sprintf(format, args...))
}
