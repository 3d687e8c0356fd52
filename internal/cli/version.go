package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lazyverdi version %s\n", Version)
			fmt.Fprintf(out, "  commit:    %s\n", Commit)
			fmt.Fprintf(out, "  built:     %s\n", Date)
			fmt.Fprintf(out, "  go:        %s\n", goVersion())
			fmt.Fprintf(out, "  platform:  %s\n", goPlatform())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}
