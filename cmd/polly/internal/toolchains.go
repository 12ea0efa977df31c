package internal

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goplus/polly/internal/toolchain"
	"github.com/spf13/cobra"
)

var toolchainsCmd = &cobra.Command{
	Use:   "toolchains",
	Short: "List the available toolchains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printToolchains(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(toolchainsCmd)
}

func printToolchains(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGENERATOR\tFAMILY")
	for _, e := range toolchain.Entries() {
		gen := e.Generator
		if gen == "" {
			gen = "(host default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, gen, e.Family)
	}
	return tw.Flush()
}
