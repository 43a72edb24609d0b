package worker

import (
	"github.com/google/uuid"
	"github.com/teeshell/teeshell/internal/task"
	"github.com/teeshell/teeshell/pkg/shell"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// Run connects to Temporal and serves shell activities on taskQueue until
// interrupted. Every entry of activityMap registers a script activity
// under its name; the generic Run activity is always registered.
func Run(address string, namespace string, taskQueue string, activityMap map[string]string) error {
	c, err := client.Dial(client.Options{
		HostPort:  address,
		Namespace: namespace,
		Identity:  taskQueue + "-" + uuid.Must(uuid.NewV7()).String(),
	})
	if err != nil {
		return err
	}
	defer c.Close()

	sh := shell.Detect()
	activities := task.NewActivities(sh)

	w := worker.New(c, taskQueue, worker.Options{DisableWorkflowWorker: true})
	w.RegisterActivity(activities)
	for name, command := range activityMap {
		w.RegisterActivityWithOptions(task.BuildScript(sh, command), activity.RegisterOptions{Name: name})
	}
	if err := w.Start(); err != nil {
		return err
	}

	<-worker.InterruptCh()
	w.Stop()
	return nil
}
