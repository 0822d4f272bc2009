package cmd

import (
	"context"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Identify the connected device and print its memory map",
	Long: `Connect to the device, read the designer and part ID from the ROM table
and run the device drivers on it. The first driver that recognises the device
attaches its memory map and commands, which are printed.

Examples:
  # Simulated RA4M3 with 512 KiB code flash
  swd probe --script testdata/ra4m3.swd

  # Simulated part found through the flash root table
  swd probe --script testdata/ra6m3.swd --part-id 0x0150

  # Real hardware
  swd probe --adapter cmsisdap --speed 4000000`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	addConnectFlags(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	t, cleanup, err := probeSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	printDevice(cmd, t)
	return nil
}

func printDevice(cmd *cobra.Command, t *target.Target) {
	out := cmd.OutOrStdout()
	color.New(color.FgGreen, color.Bold).Fprintf(out, "Found %s\n", t.Driver())

	fmt.Fprintln(out, "\nMemory map:")
	for _, r := range t.MemoryMap().Regions() {
		note := ""
		if !r.Usable() {
			note = "  (unknown size)"
		}
		fmt.Fprintf(out, "  %s%s\n", r, note)
	}

	fmt.Fprintln(out, "\nCommands:")
	for _, c := range t.Commands() {
		fmt.Fprintf(out, "  %-8s %s\n", c.Name, c.Help)
	}
}
