package benchmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/mapping"
	"github.com/ammerola/dashboard-be/internal/core/patch"
	"github.com/ammerola/dashboard-be/internal/core/services"
	"github.com/ammerola/dashboard-be/test/helpers"
)

var collectionSizes = []int{10, 100, 1000}

// replaceEveryTenth rewrites the quantity of every tenth record
func replaceEveryTenth(size int) patch.Document {
	var ops []string
	for i := 0; i < size; i += 10 {
		ops = append(ops, fmt.Sprintf(`{"op":"replace","path":"/%d/quantity","value":99}`, i))
	}
	return mustDecode("[" + strings.Join(ops, ",") + "]")
}

func mustDecode(s string) patch.Document {
	doc, err := patch.Decode(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return doc
}

func BenchmarkApply(b *testing.B) {
	mapper := mapping.SaleMapper{}

	for _, size := range collectionSizes {
		repo := newMemoryRepository(size)
		views := make([]domain.SaleForUpdate, len(repo.records))
		for i, r := range repo.records {
			views[i] = mapper.ToView(r)
		}
		doc := replaceEveryTenth(size)

		b.Run(fmt.Sprintf("replace/%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := patch.Apply(views, doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSaleService_PatchCollection(b *testing.B) {
	ctx := context.Background()

	for _, size := range collectionSizes {
		repo := newMemoryRepository(size)
		svc := services.NewSaleService(repo, helpers.TestLogger())

		docs := map[string]patch.Document{
			"replace": replaceEveryTenth(size),
			"append":  mustDecode(`[{"op":"add","path":"/-","value":{"order_number":"ORD-NEW","product":"Kettle","quantity":1,"unit_price":"30","discount":"0","channel":"store"}}]`),
			"remove":  mustDecode(`[{"op":"remove","path":"/0"}]`),
		}

		for name, doc := range docs {
			b.Run(fmt.Sprintf("%s/%d", name, size), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := svc.PatchCollection(ctx, doc); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkSaleService_List(b *testing.B) {
	ctx := context.Background()
	svc := services.NewSaleService(newMemoryRepository(1000), helpers.TestLogger())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		items, err := svc.List(ctx)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := json.Marshal(items); err != nil {
			b.Fatal(err)
		}
	}
}
