package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systra-connect/portal/internal/config"
	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/i18n"
)

func i18nCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Inspect translation catalogs",
	}
	cmd.AddCommand(i18nCheckCmd(), i18nGetCmd(), i18nLocalesCmd())
	return cmd
}

// catalogFor loads the catalog configured in the --config directory.
func catalogFor(cmd *cobra.Command) (*i18n.Catalog, error) {
	cfg, err := config.LoadOrDefault(configDir(cmd))
	if err != nil {
		return nil, err
	}
	return loadCatalog(cfg)
}

func i18nCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every locale has the fallback locale's keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogFor(cmd)
			if err != nil {
				return err
			}
			mismatches := catalog.Check()
			for _, m := range mismatches {
				warn(cmd, "%s", m)
			}
			if len(mismatches) > 0 {
				return catalog.CheckError()
			}
			success(cmd, "%d locales share %d keys", len(catalog.Locales()), len(catalog.Keys()))
			return nil
		},
	}
}

func i18nGetCmd() *cobra.Command {
	var (
		locale string
		params []string
	)

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Translate one key",
		Long: `Translate one key, falling back like the server does.

Examples:
  portal i18n get explorer_btn_download --locale fr --param name=plan.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogFor(cmd)
			if err != nil {
				return err
			}
			l := catalog.Default()
			if locale != "" {
				parsed, ok := i18n.ParseLocale(locale)
				if !ok || !catalog.Has(parsed) {
					return portalerrors.New("E301").WithDetailf("Locale %q is not in the catalog.", locale)
				}
				l = parsed
			}
			values := make(map[string]any, len(params))
			for _, p := range params {
				name, value, ok := strings.Cut(p, "=")
				if !ok {
					return portalerrors.New("E500").WithDetailf("--param %q is not name=value.", p)
				}
				values[name] = value
			}
			fmt.Fprintln(cmd.OutOrStdout(), catalog.Localizer(l).T(args[0], values))
			return nil
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "Locale to translate into (default from portal.json)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Placeholder value as name=value (repeatable)")

	return cmd
}

func i18nLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List catalog locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogFor(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LOCALE\tDIRECTION\tROLE")
			for _, l := range catalog.Locales() {
				var roles []string
				if l == catalog.Default() {
					roles = append(roles, "default")
				}
				if l == catalog.Fallback() {
					roles = append(roles, "fallback")
				}
				role := strings.Join(roles, ",")
				if role == "" {
					role = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l, catalog.Direction(l), role)
			}
			return tw.Flush()
		},
	}
}
