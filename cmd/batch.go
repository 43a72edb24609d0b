package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teeshell/teeshell/pkg/shell"
)

// batchCmd runs the steps of a YAML batch file in order and prints the
// pass/fail summary. Steps always all run; failures only affect the
// summary and the exit status.
var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "run a batch of steps and print a pass/fail summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Bool("show-output", false, "Mirror step output to the terminal while it is captured.")

	if err := viper.BindPFlags(batchCmd.Flags()); err != nil {
		panic(fmt.Sprintf("error while binding pflags: %v", err))
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := shell.LoadBatch(args[0])
	if err != nil {
		return err
	}

	summary := io.Writer(os.Stdout)
	var logTee *shell.SysTee
	if path := viper.GetString("log-file"); path != "" {
		logTee, err = shell.NewSysTee(path)
		if err != nil {
			return err
		}
		defer func() {
			_ = logTee.Close()
		}()
		summary = logTee.Stdout
	}

	var opts shell.RunOptions
	show := viper.GetBool("show-output")
	switch {
	case show && logTee != nil:
		opts.StdoutSinks = []shell.Sink{shell.WriterSink{W: logTee.Stdout}}
		opts.StderrSinks = []shell.Sink{shell.WriterSink{W: logTee.Stderr}}
	case show:
		opts.StdoutSinks = []shell.Sink{shell.WriterSink{W: os.Stdout}}
		opts.StderrSinks = []shell.Sink{shell.WriterSink{W: os.Stderr}}
	case logTee != nil:
		fileSink, err := shell.NewFileSink(viper.GetString("log-file"))
		if err != nil {
			return err
		}
		defer func() {
			_ = fileSink.Close()
		}()
		shared := shell.Synced(fileSink)
		opts.StdoutSinks = []shell.Sink{shared}
		opts.StderrSinks = []shell.Sink{shared}
	}

	results := b.Run(cmd.Context(), shellFromFlags(), opts)
	if failures := shell.Summarize(summary, b.Title, results, b.Ignore); failures > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}
