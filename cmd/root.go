package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teeshell/teeshell/pkg/shell"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "teeshell",
	Short:         "run commands with teed, captured output",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// ExitError propagates a child's exit status as the CLI's own. The message
// stays empty on purpose; the child's stderr has already been shown.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return "" }

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("shell", "", "Shell binary used for scripts; defaults to $SHELL. [$TEESHELL_SHELL]")
	viper.MustBindEnv("shell", "TEESHELL_SHELL")
	rootCmd.PersistentFlags().String("profile", "", "Profile file sourced before scripts; auto-detected when empty. [$TEESHELL_PROFILE]")
	viper.MustBindEnv("profile", "TEESHELL_PROFILE")
	rootCmd.PersistentFlags().String("log-file", "", "Append all teed output to this file.")
	rootCmd.PersistentFlags().Bool("debug", false, "Log commands as they are run.")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("error while binding pflags: %v", err))
	}
}

// shellFromFlags builds the Shell from the persistent flags, falling back
// to detection when neither is set.
func shellFromFlags() *shell.Shell {
	path := viper.GetString("shell")
	profile := viper.GetString("profile")
	if path == "" && profile == "" {
		return shell.Detect()
	}
	sh := shell.New(path, profile)
	if sh.Profile == "" {
		sh.Profile = shell.FindProfile(filepath.Base(sh.Path))
	}
	return sh
}
