package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host  string
	token string
)

var rootCmd = &cobra.Command{
	Use:   "hoopsheet-cli",
	Short: "A CLI to interact with the hoopsheet server",
	Long: `A command-line interface for making requests to the various endpoints
of the hoopsheet application. Owner commands need a session token from
"signin", passed with --token or the HOOPSHEET_TOKEN environment variable.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("HOOPSHEET_TOKEN"), "Session token for owner commands")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
