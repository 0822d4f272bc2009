package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/renesas"
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List the supported Renesas RA series",
	Args:  cobra.NoArgs,
	RunE:  runSeries,
}

func init() {
	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %-8s %-17s %s\n", "Series", "Flash", "UID location", "RAM")
	for _, info := range renesas.Catalog() {
		var ram []string
		for _, bank := range info.RAM {
			ram = append(ram, fmt.Sprintf("%s %dK@0x%08X", bank.Name, bank.Length/1024, bank.Start))
		}
		fmt.Fprintf(out, "%-6s %-8s %-17s %s\n", info.Series, info.Flash, info.UID, strings.Join(ram, ", "))
		if verbose {
			for _, df := range info.DataFlash {
				fmt.Fprintf(out, "       data flash %dK@0x%08X\n", df.Length/1024, df.Start)
			}
		}
	}
	return nil
}
