// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"os"

	"github.com/spf13/cobra"
)

// App is the harness's cobra-backed CLI, wired the way the teacher
// pack's reference CLI wires its root command.
type App struct {
	rootCmd *cobra.Command
}

// New builds the harness CLI application.
func New() *App {
	a := &App{}
	a.rootCmd = &cobra.Command{
		Use:           "tpool-harness",
		Short:         "Run the tpool end-to-end scenario battery",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !Run(cmd.OutOrStdout()) {
				return errScenarioFailed
			}
			return nil
		},
	}
	return a
}

// Execute runs the CLI, returning a process exit code.
func (a *App) Execute() int {
	if err := a.rootCmd.Execute(); err != nil {
		if err == errScenarioFailed {
			return 1
		}
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	return 0
}

var errScenarioFailed = scenarioFailedError{}

type scenarioFailedError struct{}

func (scenarioFailedError) Error() string { return "one or more scenarios failed" }
