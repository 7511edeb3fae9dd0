package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gqlpad/gqlpad/pkg/endpoint"
	"github.com/gqlpad/gqlpad/pkg/executor"
	"github.com/gqlpad/gqlpad/pkg/notify"
	"github.com/gqlpad/gqlpad/pkg/session"
	"github.com/gqlpad/gqlpad/pkg/storage"
	"github.com/gqlpad/gqlpad/pkg/summary"
)

func init() {
	rootCmd.AddCommand(endpointsCmd)
}

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List configured GraphQL endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoints, _, err := loadWorkspaceEndpoints()
		if err != nil {
			return err
		}
		if len(endpoints) == 0 {
			fmt.Println("No endpoints configured. Edit " + storage.EndpointsPath(WorkspaceFolderName))
			return nil
		}
		for _, ep := range endpoints {
			fmt.Printf("%s\t%s\n", ep.DisplayName(), ep.URL)
		}
		return nil
	},
}

func loadWorkspaceEndpoints() ([]endpoint.Endpoint, map[string]string, error) {
	vars, err := storage.LoadVariables(storage.VariablesPath(WorkspaceFolderName))
	if err != nil {
		return nil, nil, err
	}
	endpoints, err := storage.LoadEndpoints(storage.EndpointsPath(WorkspaceFolderName), vars)
	if err != nil {
		return nil, nil, err
	}
	return endpoints, vars, nil
}

// runQuery executes one query file and prints the summary line plus the
// rendered response body.
func runQuery(queryPath, endpointName, variablesPath string) error {
	endpoints, _, err := loadWorkspaceEndpoints()
	if err != nil {
		return err
	}
	registry := endpoint.NewRegistry(endpoints)

	selected, err := pickEndpoint(registry, endpointName)
	if err != nil {
		return err
	}

	queryText, err := os.ReadFile(queryPath)
	if err != nil {
		return fmt.Errorf("failed to read query file: %w", err)
	}

	var variablesDoc session.Document
	if variablesPath != "" {
		variablesText, err := os.ReadFile(variablesPath)
		if err != nil {
			return fmt.Errorf("failed to read variables file: %w", err)
		}
		variablesDoc = session.NewTextDocument(session.DocumentID(variablesPath), string(variablesText))
	}

	links := session.NewLinks(registry)
	defer links.Close()
	binding := links.Bind(session.NewTextDocument(session.DocumentID(queryPath), string(queryText)), variablesDoc)
	binding.SetSelectedEndpoint(&selected)

	// Notifications go to stderr so the response stays pipeable.
	bus := notify.NewBus()
	bus.Subscribe(queryNotificationPrinter(os.Stderr))

	outcomes := make(chan executor.Outcome, 1)
	sink := executor.SinkFunc(func(_ *session.Binding, o executor.Outcome) {
		outcomes <- o
	})

	x := executor.New(sink, bus)
	x.Execute(binding)
	x.Wait()

	select {
	case outcome := <-outcomes:
		return printOutcome(queryPath, outcome)
	default:
		// Construction failed; the notification already explained it.
		return fmt.Errorf("query was not executed")
	}
}

// queryNotificationPrinter writes notifications to w. Transport warnings are
// skipped here: in one-shot mode the outcome error already reports the
// failure, and the same message would print twice.
func queryNotificationPrinter(w io.Writer) notify.Callback {
	return func(n notify.Notification) {
		if n.Severity == notify.SeverityWarning {
			return
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", n.Severity, n.Title, n.Message)
	}
}

func pickEndpoint(registry *endpoint.Registry, name string) (endpoint.Endpoint, error) {
	if name != "" {
		ep, ok := registry.FindByName(name)
		if !ok {
			return endpoint.Endpoint{}, fmt.Errorf("no endpoint named %q", name)
		}
		return ep, nil
	}

	all := registry.List()
	if len(all) == 0 {
		return endpoint.Endpoint{}, fmt.Errorf("no endpoints configured")
	}
	return all[0], nil
}

func printOutcome(queryPath string, outcome executor.Outcome) error {
	if outcome.Err != nil {
		return outcome.Err
	}

	resp := outcome.Response
	fmt.Fprintln(os.Stderr, summary.Describe(
		filepath.Base(queryPath), resp.Elapsed, resp.Size(), resp.ErrorCount, resp.ErrorCountKnown))

	// Render response with Glamour
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(resp.Body) // Fallback to raw output
		return nil
	}

	out, err := renderer.Render("```json\n" + resp.Body + "\n```")
	if err != nil {
		fmt.Println(resp.Body) // Fallback
		return nil
	}

	fmt.Print(out)
	return nil
}
