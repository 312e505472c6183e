package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/icon"
)

func iconCmd() *cobra.Command {
	var (
		isDir bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "icon [name...]",
		Short: "Resolve explorer icons for file names",
		Long: `Print the glyph and category the file explorer shows for each name.

Examples:
  portal icon plan.pdf model.IFC Makefile
  portal icon --dir archive.zip
  portal icon --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if list {
				fmt.Fprintln(tw, "CATEGORY\tGLYPH\tEXTENSIONS")
				for _, c := range icon.Categories() {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", c, c.Glyph(), strings.Join(c.Extensions(), " "))
				}
				return tw.Flush()
			}
			if len(args) == 0 {
				return portalerrors.New("E500").WithDetail("icon needs at least one name, or --list.")
			}
			for _, name := range args {
				fd := icon.FileDescriptor{Name: name, IsDir: isDir}
				category := icon.Classify(fd).String()
				if isDir {
					category = "folder"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", icon.Resolve(fd), name, category)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&isDir, "dir", "d", false, "Treat the names as folders")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every category with its extensions")

	return cmd
}
