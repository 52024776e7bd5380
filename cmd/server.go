package cmd

import (
	"AirFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the AirFM streaming server",
	Long:  `Start the AirFM HTTP server, serving the track catalog and byte-range audio streaming endpoints`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
