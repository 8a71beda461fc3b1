// Command seed prepares a store-directory database: it creates indexes and loads sample data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/config"
	"github.com/sngm3741/store-directory/api/pkg/logger"
)

type globalOptions struct {
	envFiles         []string
	mongoURI         string
	database         string
	storeCollection  string
	reviewCollection string
	timeout          time.Duration
	logLevel         string
}

var globals globalOptions

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create indexes and load sample stores",
	Long: `seed manages the store-directory MongoDB database.

Values default to the same environment variables the API reads
(MONGO_URI, MONGO_DB, STORE_COLLECTION, REVIEW_COLLECTION), optionally
loaded from --env-file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(globals.envFiles...); err != nil {
			return err
		}
		applyEnvDefaults(cmd)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&globals.envFiles, "env-file", []string{".env"}, "env files to load before reading MONGO_* variables")
	flags.StringVar(&globals.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string (MONGO_URI)")
	flags.StringVar(&globals.database, "db", "store-directory", "database name (MONGO_DB)")
	flags.StringVar(&globals.storeCollection, "stores", "stores", "store collection (STORE_COLLECTION)")
	flags.StringVar(&globals.reviewCollection, "reviews", "reviews", "review collection (REVIEW_COLLECTION)")
	flags.DurationVar(&globals.timeout, "timeout", 60*time.Second, "overall deadline")
	flags.StringVar(&globals.logLevel, "log-level", "info", "log level")

	rootCmd.AddCommand(indexesCmd, seedCmd)
}

// applyEnvDefaults lets environment variables fill flags the user did not set.
func applyEnvDefaults(cmd *cobra.Command) {
	bindings := []struct {
		flag string
		env  string
		dst  *string
	}{
		{"mongo-uri", "MONGO_URI", &globals.mongoURI},
		{"db", "MONGO_DB", &globals.database},
		{"stores", "STORE_COLLECTION", &globals.storeCollection},
		{"reviews", "REVIEW_COLLECTION", &globals.reviewCollection},
	}
	for _, b := range bindings {
		if cmd.Flags().Changed(b.flag) {
			continue
		}
		if v := os.Getenv(b.env); v != "" {
			*b.dst = v
		}
	}
}

// connect opens the database and returns a cleanup func.
func connect(ctx context.Context) (*mongo.Database, func(), error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(globals.mongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", globals.mongoURI, err)
	}
	cleanup := func() { _ = client.Disconnect(context.Background()) }
	return client.Database(globals.database), cleanup, nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(globals.logLevel, "console")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
