package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:     "plugins",
	Short:   "List block plugins",
	GroupID: "blocks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		descriptors := a.Catalog.Descriptors()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), descriptors)
		}
		printDescriptorTable(cmd.OutOrStdout(), descriptors)
		return nil
	},
}

var placeCmd = &cobra.Command{
	Use:     "place <region> <plugin-id>",
	Short:   "Place a block in a region with default configuration",
	GroupID: "blocks",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, _ := cmd.Flags().GetInt("weight")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Placements.Place(cmdContext(cmd), args[1], args[0], weight)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Placed %s in %s as %s\n", p.PluginID, p.Region, p.ID)
		return nil
	},
}

var blocksCmd = &cobra.Command{
	Use:     "blocks [region]",
	Short:   "List placed blocks",
	GroupID: "blocks",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmdContext(cmd)

		regions := args
		if len(regions) == 0 {
			if regions, err = a.Placements.Regions(ctx); err != nil {
				return err
			}
		}
		var all []any
		for _, name := range regions {
			placements, err := a.Placements.Region(ctx, name)
			if err != nil {
				return err
			}
			for _, p := range placements {
				all = append(all, p)
			}
			if !jsonOutput {
				printPlacementTable(cmd.OutOrStdout(), placements)
			}
		}
		if jsonOutput {
			if all == nil {
				all = []any{}
			}
			return printJSON(cmd.OutOrStdout(), all)
		}
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:     "move <placement-id> <region> [weight]",
	Short:   "Move a block to another region or weight",
	GroupID: "blocks",
	Args:    cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight := 0
		if len(args) == 3 {
			parsed, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("weight must be an integer: %w", err)
			}
			weight = parsed
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Placements.Move(cmdContext(cmd), args[0], args[1], weight)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s (weight %d)\n", p.ID, p.Region, p.Weight)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <placement-id>",
	Short:   "Remove a block and its configuration",
	GroupID: "blocks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Placements.Remove(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

func init() {
	placeCmd.Flags().Int("weight", 0, "render order within the region")
}
