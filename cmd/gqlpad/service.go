package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gqlpad/gqlpad/pkg/langservice"
	"github.com/gqlpad/gqlpad/pkg/notify"
)

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().IntVar(&serviceRestarts, "max-restarts", 3, "Restarts to attempt when the service exits")
}

var serviceRestarts int

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Run the schema language service in the foreground",
	Long: `Runs the language service configured under service.command in
.gqlpad/config.yaml, tailing its output. When the process exits it is
restarted, up to --max-restarts times. Editing the config file updates the
command used for the next restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		command := viper.GetString("service.command")
		if command == "" {
			return fmt.Errorf("service.command is not configured in %s/config.yaml", WorkspaceFolderName)
		}

		instance := langservice.NewInstance(serviceConfig())

		bus := notify.NewBus()
		bus.Subscribe(func(n notify.Notification) {
			fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", n.Severity, n.Title, n.Message)
		})

		console := langservice.NewConsole(os.Stdout)
		supervisor := langservice.NewSupervisor(instance, console, bus)

		// Config edits apply on the next restart.
		viper.OnConfigChange(func(fsnotify.Event) {
			instance.SetConfig(serviceConfig())
		})
		viper.WatchConfig()

		if err := supervisor.RestartAndWait(); err != nil {
			return err
		}
		defer instance.Stop()

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

		restarts := 0
		for {
			select {
			case <-signals:
				return nil
			case <-instance.Done():
				err := instance.ExitError()
				if restarts >= serviceRestarts {
					return fmt.Errorf("language service exited: %v", err)
				}
				restarts++
				fmt.Fprintf(os.Stderr, "language service exited (%v), restarting (%d/%d)\n",
					err, restarts, serviceRestarts)
				if rerr := supervisor.RestartAndWait(); rerr != nil {
					return rerr
				}
			}
		}
	},
}

func serviceConfig() langservice.Config {
	return langservice.Config{
		Command: viper.GetString("service.command"),
		Args:    viper.GetStringSlice("service.args"),
		Env:     viper.GetStringMapString("service.env"),
		WorkDir: viper.GetString("service.workdir"),
	}
}
