package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mongodoc "github.com/sngm3741/store-directory/api/internal/infrastructure/mongo"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the text, geo and unique slug indexes",
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

		if err := mongodoc.EnsureIndexes(ctx, db, globals.storeCollection, globals.reviewCollection); err != nil {
			return err
		}
		log.Info("indexes ensured",
			zap.String("db", globals.database),
			zap.String("stores", globals.storeCollection),
			zap.String("reviews", globals.reviewCollection),
		)
		return nil
	},
}
