package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gqlpad/gqlpad/pkg/storage"
)

// WorkspaceFolderName is the per-project configuration folder.
const WorkspaceFolderName = ".gqlpad"

var version = "dev"

var (
	cfgFile       string
	queryFile     string
	endpointName  string
	variablesFile string

	rootCmd = &cobra.Command{
		Use:   "gqlpad",
		Short: "gqlpad - run GraphQL operations from your terminal",
		Long: `gqlpad executes GraphQL operations against configured endpoints and keeps
a schema language service running alongside your project. Endpoints live in
.gqlpad/endpoints.yaml and support {{env:VAR}} substitution, so tokens stay
out of your files.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			// Load .env file if it exists (optional, warn if malformed)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
			}

			// Initialize .gqlpad folder (writes a starter endpoints file on first run)
			if err := storage.InitWorkspace(WorkspaceFolderName); err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing config folder: %v\n", err)
				os.Exit(1)
			}

			// Re-read config after initialization (first run creates files
			// after Viper's initial read, so values would be stale without this)
			_ = viper.ReadInConfig()

			// CLI Mode: execute a query file
			if queryFile != "" {
				if err := runQuery(queryFile, endpointName, variablesFile); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				return
			}

			cmd.Help()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .gqlpad/config.yaml)")

	// CLI Flags
	rootCmd.Flags().StringVarP(&queryFile, "query", "q", "", "Execute a GraphQL query file")
	rootCmd.Flags().StringVarP(&endpointName, "endpoint", "e", "", "Endpoint name to query (default is the first entry)")
	rootCmd.Flags().StringVarP(&variablesFile, "variables", "V", "", "JSON file with operation variables")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(WorkspaceFolderName)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
