package cmd

import (
	"context"
	"strings"

	"github.com/juju/errors"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor <command> [args...]",
	Short: "Run a device specific command",
	Long: `Identify the device, then run one of the commands its driver provides.
The command line may be given as separate arguments or as one quoted string.

Examples:
  swd monitor --script testdata/ra4m3.swd uid
  swd monitor --adapter cmsisdap "info"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	addConnectFlags(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	argv, err := shellwords.Parse(strings.Join(args, " "))
	if err != nil {
		return errors.Annotate(err, "command line")
	}
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	ctx := context.Background()
	t, cleanup, err := probeSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ok, err := t.Run(ctx, argv)
	if err != nil {
		return errors.Annotatef(err, "%s", t.Driver())
	}
	if !ok {
		return errors.Errorf("%s failed", argv[0])
	}
	return nil
}
