// cmd/seeder/seed.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ammerola/dashboard-be/internal/adapters/db"
	redis_a "github.com/ammerola/dashboard-be/internal/adapters/redis_adapter"
	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
	"github.com/ammerola/dashboard-be/internal/core/services"
)

var (
	seedFile      string
	seedReplace   bool
	seedSkipCache bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sales and inventories from a YAML fixture file",
	Long: `Load sales and inventories from a YAML fixture file.

Records are appended after the stored collection unless --replace is
given, in which case the stored collection is removed first. The API list
cache is invalidated afterwards.`,
	Args: cobra.NoArgs,
	Run:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "fixture file (required)")
	seedCmd.Flags().BoolVar(&seedReplace, "replace", false, "remove the stored records first")
	seedCmd.Flags().BoolVar(&seedSkipCache, "skip-cache", false, "do not invalidate the API list cache")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	data, err := os.ReadFile(seedFile)
	if err != nil {
		exitError("failed to read %s: %v", seedFile, err)
	}

	fixtures, err := parseFixtures(data)
	if err != nil {
		exitError("%v", err)
	}

	sales := make([]*domain.Sale, 0, len(fixtures.Sales))
	for _, f := range fixtures.Sales {
		sale, err := f.toDomain()
		if err != nil {
			exitError("%v", err)
		}
		sales = append(sales, sale)
	}

	inventories := make([]*domain.Inventory, 0, len(fixtures.Inventories))
	for _, f := range fixtures.Inventories {
		inv, err := f.toDomain()
		if err != nil {
			exitError("%v", err)
		}
		inventories = append(inventories, inv)
	}

	c := initContext(ctx)
	defer c.Close()

	var seeded []string

	if len(sales) > 0 || seedReplace {
		if err := seedCollection(ctx, db.NewSaleStore(c.Database, c.Logger), sales, seedReplace); err != nil {
			exitError("failed to seed sales: %v", err)
		}
		success("%d sales seeded", len(sales))
		seeded = append(seeded, services.KindSales)
	}

	if len(inventories) > 0 || seedReplace {
		if err := seedCollection(ctx, db.NewInventoryStore(c.Database, c.Logger), inventories, seedReplace); err != nil {
			exitError("failed to seed inventories: %v", err)
		}
		success("%d inventories seeded", len(inventories))
		seeded = append(seeded, services.KindInventories)
	}

	if seedSkipCache || len(seeded) == 0 {
		return
	}
	if err := invalidateListCache(ctx, c, seeded); err != nil {
		fmt.Fprintf(os.Stderr, "%s list cache not invalidated: %v\n", color.YellowString("warning:"), err)
		return
	}
	success("list cache invalidated")
}

// seedCollection stages items after the stored collection and commits them
// in one save. With replace the stored records are removed in the same save.
func seedCollection[E ports.Entity](ctx context.Context, repos ports.RepositoryFactory[E], items []E, replace bool) error {
	repo := repos.Open(ctx)

	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	next := 0
	if replace {
		repo.Remove(existing)
	} else if len(existing) > 0 {
		next = existing[len(existing)-1].Ordinal() + 1
	}

	for i, item := range items {
		item.PrepareForStorage()
		item.SetOrdinal(next + i)
		repo.Add(item)
	}

	return repo.Save(ctx)
}

func invalidateListCache(ctx context.Context, c *cmdContext, kinds []string) error {
	client, err := redis_a.NewClient(ctx, &redis.Options{
		Addr:     c.Config.GetRedisAddress(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	cache := redis_a.NewCache(client, redis_a.PrefixDashboard, c.Config.Redis.TTL, c.Logger)

	keys := make([]string, len(kinds))
	for i, kind := range kinds {
		keys[i] = services.ListCacheKey(kind)
	}
	return cache.Delete(ctx, keys...)
}
