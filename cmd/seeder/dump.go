// cmd/seeder/dump.go
package main

import (
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ammerola/dashboard-be/internal/adapters/db"
	"github.com/ammerola/dashboard-be/internal/core/services"
)

var (
	dumpKinds []string
	dumpOut   string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the stored collections as a YAML fixture file",
	Long: `Write the stored collections as a YAML fixture file that seed can load
again. The output goes to stdout unless --out is given.`,
	Args: cobra.NoArgs,
	Run:  runDump,
}

func init() {
	dumpCmd.Flags().StringSliceVarP(&dumpKinds, "kind", "k",
		[]string{services.KindSales, services.KindInventories}, "collections to dump")
	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", "", "output file")
}

func runDump(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	for _, kind := range dumpKinds {
		if kind != services.KindSales && kind != services.KindInventories {
			exitError("unknown collection %q", kind)
		}
	}

	c := initContext(ctx)
	defer c.Close()

	var out fixtureFile

	if slices.Contains(dumpKinds, services.KindSales) {
		sales, err := db.NewSaleStore(c.Database, c.Logger).Open(ctx).GetAll(ctx)
		if err != nil {
			exitError("failed to load sales: %v", err)
		}
		for _, s := range sales {
			out.Sales = append(out.Sales, saleFixtureFrom(s))
		}
	}

	if slices.Contains(dumpKinds, services.KindInventories) {
		inventories, err := db.NewInventoryStore(c.Database, c.Logger).Open(ctx).GetAll(ctx)
		if err != nil {
			exitError("failed to load inventories: %v", err)
		}
		for _, i := range inventories {
			out.Inventories = append(out.Inventories, inventoryFixtureFrom(i))
		}
	}

	data, err := out.marshal()
	if err != nil {
		exitError("failed to encode fixtures: %v", err)
	}

	if dumpOut == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(dumpOut, data, 0o644); err != nil {
		exitError("failed to write %s: %v", dumpOut, err)
	}
	success("%d sales and %d inventories written to %s", len(out.Sales), len(out.Inventories), dumpOut)
}
