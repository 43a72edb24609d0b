package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teeshell/teeshell/pkg/shell"
)

// runCmd runs a single command or script line with its output mirrored to
// the terminal and captured.
var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "run one command, teeing and capturing its output",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("dir", "d", "", "Working directory for the command.")
	runCmd.Flags().StringToStringP("env", "e", nil, "Extra environment variables, key=value.")
	runCmd.Flags().BoolP("script", "s", false, "Join the arguments into one script line and run it through the shell, sourcing the profile.")
	runCmd.Flags().BoolP("quiet", "q", false, "Capture output without mirroring it to the terminal.")
	runCmd.Flags().Duration("timeout", 0, "Kill the command after this duration.")

	if err := viper.BindPFlags(runCmd.Flags()); err != nil {
		panic(fmt.Sprintf("error while binding pflags: %v", err))
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if d := viper.GetDuration("timeout"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	var opts shell.RunOptions
	if !viper.GetBool("quiet") {
		opts.StdoutSinks = append(opts.StdoutSinks, shell.WriterSink{W: os.Stdout})
		opts.StderrSinks = append(opts.StderrSinks, shell.WriterSink{W: os.Stderr})
	}
	if path := viper.GetString("log-file"); path != "" {
		fileSink, err := shell.NewFileSink(path)
		if err != nil {
			return err
		}
		defer func() {
			_ = fileSink.Close()
		}()
		// one file sink receives both streams
		shared := shell.Synced(fileSink)
		opts.StdoutSinks = append(opts.StdoutSinks, shared)
		opts.StderrSinks = append(opts.StderrSinks, shared)
	}

	sh := shellFromFlags()
	var (
		res shell.Result
		err error
	)
	if viper.GetBool("script") {
		script := strings.Join(args, " ")
		log.Debug("running script", "shell", sh.Path, "profile", sh.Profile, "script", script)
		res, err = sh.RunScript(ctx, script, opts)
	} else {
		spec := shell.ProcessSpec{
			Command: args[0],
			Args:    args[1:],
			Dir:     viper.GetString("dir"),
			Env:     viper.GetStringMapString("env"),
		}
		log.Debug("running command", "argv", spec.Argv())
		res, err = sh.Run(ctx, spec, opts)
	}

	var waitErr *shell.WaitError
	switch {
	case err == nil:
	case errors.As(err, &waitErr):
		log.Error("wait failed, keeping captured output", "err", waitErr)
	default:
		return err
	}
	if res.StdoutErr != nil {
		log.Error("stdout stream failed mid-read", "err", res.StdoutErr)
	}
	if res.StderrErr != nil {
		log.Error("stderr stream failed mid-read", "err", res.StderrErr)
	}
	log.Debug("finished", "run_id", res.RunID, "exit_code", res.ExitCode)
	if res.ExitCode != 0 {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}
