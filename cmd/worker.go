package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teeshell/teeshell/internal/worker"
)

// workerCmd serves shell runs as Temporal activities.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "serve shell runs as temporal activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return worker.Run(
			viper.GetString("address"),
			viper.GetString("namespace"),
			viper.GetString("task-queue"),
			viper.GetStringMapString("activity"),
		)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().String("address", "127.0.0.1:7233", "The host and port (formatted as host:port) for the Temporal Frontend Service. [$TEMPORAL_ADDRESS]")
	viper.MustBindEnv("address", "TEMPORAL_ADDRESS")
	workerCmd.Flags().StringP("namespace", "n", "default", "Identifies a Namespace in the Temporal Workflow. [$TEMPORAL_NAMESPACE]")
	viper.MustBindEnv("namespace", "TEMPORAL_NAMESPACE")
	workerCmd.Flags().StringP("task-queue", "t", "", "Task Queue. [$TEMPORAL_TASK_QUEUE]")
	viper.MustBindEnv("task-queue", "TEMPORAL_TASK_QUEUE")
	workerCmd.Flags().StringToStringP("activity", "a", nil, "Mapping activity name to shell command.")

	if err := viper.BindPFlags(workerCmd.Flags()); err != nil {
		panic(fmt.Sprintf("error while binding pflags: %v", err))
	}
}
