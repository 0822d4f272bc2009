package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceSWD/internal/config"
	"github.com/golang/glog"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg = config.Default()
)

// glog flags are accepted but kept out of the help output
var hiddenFlags = []string{
	"alsologtostderr",
	"log_backtrace_at",
	"log_dir",
	"logtostderr",
	"stderrthreshold",
	"v",
	"vmodule",
}

var rootCmd = &cobra.Command{
	Use:   "swd",
	Short: "SWD device identification for Renesas RA microcontrollers",
	Long: `swd connects to a microcontroller over a CMSIS-DAP probe (or a simulated
memory image), identifies the device and prints its memory map.

Examples:
  swd probe --script testdata/ra4m3.swd           # Identify a simulated RA4M3
  swd probe --adapter cmsisdap                     # Identify the connected device
  swd monitor --adapter cmsisdap uid               # Print the device unique ID
  swd series                                       # List supported RA series`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/opentraceswd/config.yaml)")

	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	for _, f := range hiddenFlags {
		rootCmd.PersistentFlags().MarkHidden(f)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// glog expects the Go flag set to be parsed; pflag already stored the values
	if !goflag.Parsed() {
		goflag.CommandLine.Parse(nil)
	}

	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return errors.Annotate(err, "config")
	}
	glog.V(1).Infof("config: %+v", *cfg)
	return nil
}
