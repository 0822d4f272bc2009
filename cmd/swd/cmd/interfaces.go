package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/dap"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List available CMSIS-DAP probes",
	Long: `Scan the host for known CMSIS-DAP probes and print them. Use this to verify
connectivity or find the --vid/--pid to pass to the other commands.`,
	Args: cobra.NoArgs,
	RunE: runInterfaces,
}

func init() {
	rootCmd.AddCommand(interfacesCmd)
}

func runInterfaces(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	probes, err := dap.EnumerateProbes(ctx)
	if err != nil {
		return errors.Annotate(err, "discover interfaces")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Detected interfaces:")
	for _, p := range probes {
		fmt.Fprintf(out, "  - %s [cmsisdap]\n", p.Label())
	}
	fmt.Fprintln(out, "  - Simulator (no hardware) [simulator]")
	return nil
}
