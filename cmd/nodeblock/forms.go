package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeblock/internal/app"
	"github.com/goliatone/go-nodeblock/pkg/orchestrator"
	"github.com/goliatone/go-nodeblock/pkg/renderers/tui"
)

var formCmd = &cobra.Command{
	Use:     "form <placement-id>",
	Short:   "Print the configuration form of a block",
	GroupID: "blocks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rendererName, _ := cmd.Flags().GetString("renderer")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Forms.Generate(cmdContext(cmd), orchestrator.Request{
			PlacementID: args[0],
			Renderer:    rendererName,
		})
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out.Body)
		return err
	},
}

var configureCmd = &cobra.Command{
	Use:     "configure <placement-id>",
	Short:   "Configure a block interactively",
	GroupID: "blocks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, app.WithTUIOptions(
			tui.WithOutputFormat(tui.OutputFormatFormURLEncoded),
			tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
		))
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmdContext(cmd)

		out, err := a.Forms.Generate(ctx, orchestrator.Request{PlacementID: args[0], Renderer: "tui"})
		if err != nil {
			return err
		}
		answers, err := url.ParseQuery(string(out.Body))
		if err != nil {
			return fmt.Errorf("decode answers: %w", err)
		}
		p, err := a.Placements.Configure(ctx, args[0], answers)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved configuration of %s\n", p.ID)
		printConfiguration(cmd.OutOrStdout(), p.Configuration)
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:     "render <region>",
	Short:   "Render the blocks of a region",
	GroupID: "blocks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Regions.Render(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.HTML())
		return nil
	},
}

func init() {
	formCmd.Flags().String("renderer", "vanilla", "form renderer (vanilla or tui)")
}
