package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/placement"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printDescriptorTable(w io.Writer, descriptors []block.Descriptor) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "LABEL", "CATEGORY")
	for _, d := range descriptors {
		table.Append([]string{d.ID, d.AdminLabel, d.Category})
	}
	table.Render()
}

func printPlacementTable(w io.Writer, placements []placement.Placement) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "REGION", "WEIGHT", "PLUGIN", "ENTITY")
	for _, p := range placements {
		table.Append([]string{p.ID, p.Region, strconv.Itoa(p.Weight), p.PluginID, p.Configuration.Get("entity_field")})
	}
	table.Render()
}

func printConfiguration(w io.Writer, cfg block.Configuration) {
	keys := make([]string, 0, len(cfg))
	for key := range cfg {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: %s\n", key, cfg[key])
	}
}
