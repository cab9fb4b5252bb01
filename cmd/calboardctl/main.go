package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"calboard/pkg/client"
	"calboard/pkg/utils"
)

var (
	serverURL string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "calboardctl",
	Short:         "Terminal client for a calboard server",
	Long:          "calboardctl reads and updates a running calboard leaderboard over its HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is loaded in main, after flag defaults were computed.
		if !cmd.Flags().Changed("server") {
			serverURL = defaultServer()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer(), "Base URL of the calboard server (env CALBOARD_SERVER)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Per-request timeout")

	rootCmd.AddCommand(newShowCmd(), newAddCmd(), newResetCmd(), newSeedCmd(), newHealthCmd(), newBenchCmd())
}

func defaultServer() string {
	if v := os.Getenv("CALBOARD_SERVER"); v != "" {
		return v
	}
	return client.DefaultBaseURL
}

func newClient() *client.Client {
	c := client.New(serverURL)
	c.HTTPClient = httpClient()
	return c
}

func main() {
	utils.LoadEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}
