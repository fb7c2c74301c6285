package main

import (
	"fmt"
	"os"
	"time"

	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/version"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger(cmd *cobra.Command, args []string) {
	level := logging.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logging.LevelDebug
	}
	logger = logging.NewWriterLogger(os.Stderr, level, false)
}

var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "relayctl - operator tool for the glasses order relay",
	Long: `relayctl talks to a running relay and to the Telegram Bot API.
Use it to send a test order through the relay or to verify bot credentials.`,
	PersistentPreRun: initLogger,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("relayctl version: %s\n", version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(checkBotCmd)

	submitCmd.Flags().String("url", "http://localhost:8080/api/send-to-telegram", "Relay endpoint")
	submitCmd.Flags().String("name", "", "Customer name")
	submitCmd.Flags().String("phone", "", "Customer phone")
	submitCmd.Flags().String("message", "", "Order message")
	submitCmd.Flags().Duration("timeout", 15*time.Second, "Request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
