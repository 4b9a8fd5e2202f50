package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeblock/internal/app"
	"github.com/goliatone/go-nodeblock/internal/config"
)

var (
	cfgFile    string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "nodeblock",
	Short: "Place, configure and render node reference blocks",
	Long: `nodeblock hosts two block plugins that render a referenced node inside a
page region. Use it to serve the admin UI or to manage placements from the
terminal. Placements only persist with the sqlite storage driver.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nodeblock.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().String("storage", config.DriverMemory, "storage driver: memory or sqlite")
	rootCmd.PersistentFlags().String("dsn", "nodeblock.db", "sqlite database path")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	rootCmd.AddGroup(
		&cobra.Group{ID: "blocks", Title: "Block commands:"},
		&cobra.Group{ID: "nodes", Title: "Node commands:"},
	)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pluginsCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(importNodesCmd)
}

// loadConfig resolves the configuration file, NODEBLOCK_* variables and the
// persistent flags of cmd, flags winning.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"storage.driver": "storage",
		"storage.dsn":    "dsn",
		"log.level":      "log-level",
		"http.addr":      "addr",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	return config.Decode(v)
}

func openApp(cmd *cobra.Command, opts ...app.Option) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmdContext(cmd), cfg, opts...)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
