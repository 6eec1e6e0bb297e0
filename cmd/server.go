package cmd

import (
	"github.com/Daskott/raksha/server"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a raksha server",
	Long:  `The raksha server exposes the Raksha+ REST api under /api & prometheus metrics under /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverCfg, err := serverConfig(config)
		if err != nil {
			return err
		}

		server.Start(serverCfg, isDevEnv)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
