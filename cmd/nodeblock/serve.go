package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeblock/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the block admin and region endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := server.New(ctx, a)
		if err != nil {
			return err
		}
		return srv.Run(ctx, a.Config.HTTP.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
}
