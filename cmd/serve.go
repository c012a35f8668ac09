package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avoronin/yieldscope/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Starts the gin-based HTTP surface exposing 'analyse' over REST, for integrating with other tools.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		router := httpapi.NewRouter()
		fmt.Printf("yieldscope HTTP API listening on %s\n", addr)
		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "localhost:8080", "address to listen on")
}
