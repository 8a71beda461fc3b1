package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
	mongodoc "github.com/sngm3741/store-directory/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	storeCount      int
	reviewsPerStore int
	authors         int
	drop            bool
	randomSeed      int64
}

var seedOpts seedOptions

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample stores and reviews",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), globals.timeout)
		defer cancel()

		db, cleanup, err := connect(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if seedOpts.drop {
			for _, name := range []string{globals.storeCollection, globals.reviewCollection} {
				if err := db.Collection(name).Drop(ctx); err != nil {
					return fmt.Errorf("drop %s: %w", name, err)
				}
			}
			log.Info("collections dropped")
		}
		if err := mongodoc.EnsureIndexes(ctx, db, globals.storeCollection, globals.reviewCollection); err != nil {
			return err
		}

		storeRepo := mongodoc.NewStoreRepository(db, globals.storeCollection, globals.reviewCollection)
		reviewRepo := mongodoc.NewReviewRepository(db, globals.reviewCollection)
		stores := application.NewStoreService(application.StoreServiceConfig{Repo: storeRepo, Logger: log})
		reviews := application.NewReviewService(storeRepo, reviewRepo, nil, log)

		return seedData(ctx, log, stores, reviews, seedOpts)
	},
}

func init() {
	flags := seedCmd.Flags()
	flags.IntVar(&seedOpts.storeCount, "count", 30, "number of stores to create")
	flags.IntVar(&seedOpts.reviewsPerStore, "max-reviews", 4, "maximum reviews per store")
	flags.IntVar(&seedOpts.authors, "authors", 5, "number of distinct sample authors")
	flags.BoolVar(&seedOpts.drop, "drop", false, "drop the collections first")
	flags.Int64Var(&seedOpts.randomSeed, "random-seed", 42, "seed for deterministic sample data")
}

var (
	sampleNames = []string{
		"Pizza Palace", "Burger Barn", "Noodle Nook", "Quiet Cafe", "Taco Town",
		"Bagel Bros", "Sushi Spot", "Curry Corner", "Dumpling House", "Waffle Works",
	}
	sampleTags = []string{
		"Wifi", "Open Late", "Family Friendly", "Vegetarian", "Licensed",
	}
	sampleReviews = []string{
		"Great food, friendly staff.",
		"A bit slow but worth the wait.",
		"Would come back again.",
		"Not my favourite.",
		"Best in the neighbourhood!",
	}
)

// seedData creates stores and reviews through the application services. Names repeat, so
// later stores get numbered slugs.
func seedData(ctx context.Context, log *zap.Logger, stores application.StoreService, reviews application.ReviewService, opts seedOptions) error {
	rng := rand.New(rand.NewSource(opts.randomSeed))
	authors := max(opts.authors, 1)

	created := 0
	reviewCount := 0
	for i := 0; i < opts.storeCount; i++ {
		actor := domain.Actor{ID: fmt.Sprintf("seed-user-%d", rng.Intn(authors)+1)}
		store, err := stores.Create(ctx, actor, sampleStoreCommand(rng, i))
		if err != nil {
			return fmt.Errorf("create store %d: %w", i, err)
		}
		created++

		for n := rng.Intn(opts.reviewsPerStore + 1); n > 0; n-- {
			reviewer := domain.Actor{ID: fmt.Sprintf("seed-user-%d", rng.Intn(authors)+1)}
			_, err := reviews.Add(ctx, reviewer, store.ID, application.AddReviewCommand{
				Text:   sampleReviews[rng.Intn(len(sampleReviews))],
				Rating: rng.Intn(domain.MaxRating) + domain.MinRating,
			})
			if err != nil {
				return fmt.Errorf("review store %s: %w", store.Slug, err)
			}
			reviewCount++
		}
	}

	log.Info("sample data loaded", zap.Int("stores", created), zap.Int("reviews", reviewCount))
	return nil
}

func sampleStoreCommand(rng *rand.Rand, i int) application.UpsertStoreCommand {
	name := sampleNames[i%len(sampleNames)]
	tags := make([]string, 0, 3)
	for _, idx := range rng.Perm(len(sampleTags))[:rng.Intn(3)+1] {
		tags = append(tags, sampleTags[idx])
	}
	// Scatter points around downtown Toronto.
	lng := round(-79.38+(rng.Float64()-0.5)*0.2, 5)
	lat := round(43.65+(rng.Float64()-0.5)*0.2, 5)

	return application.UpsertStoreCommand{
		Name:        name,
		Description: fmt.Sprintf("%s is a sample listing #%d.", name, i+1),
		Tags:        tags,
		Location: application.LocationCommand{
			Coordinates: []float64{lng, lat},
			Address:     fmt.Sprintf("%d Queen St W, Toronto", 100+i),
		},
	}
}

func round(val float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(val*p) / p
}
