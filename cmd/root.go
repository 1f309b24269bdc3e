package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restodata/restogen/internal/generator"
	"github.com/restodata/restogen/internal/models"
	"github.com/restodata/restogen/internal/output"
)

var cfgFile string

var log = logrus.New()

const defaultAnchorDate = "2025-06-01T00:00:00Z"

var rootCmd = &cobra.Command{
	Use:   "restogen",
	Short: "Generates a deterministic synthetic restaurant analytics dataset",
	Long: `restogen is a CLI tool that deterministically generates a synthetic
restaurant analytics dataset of six collections (customers, menu items, orders,
delivery details, staff users, audit logs) and writes it to JSON files, with
optional MongoDB, Postgres, Kafka, Parquet and S3 exports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
	SilenceUsage: true,
}

func run() error {
	// credentials for the optional stores come from .env, when present
	_ = godotenv.Load()

	runLog := log.WithField("run_id", cuid.New())

	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	gen, err := generator.New(cfg)
	if err != nil {
		return err
	}

	dataset, err := gen.Generate()
	if err != nil {
		return err
	}
	runLog.WithFields(logrus.Fields{
		"orders":     len(dataset.Orders),
		"customers":  len(dataset.Customers),
		"menu_items": len(dataset.MenuItems),
		"deliveries": len(dataset.DeliveryDetails),
		"audit_logs": len(dataset.AuditLogs),
	}).Info("dataset generated")

	ctx := context.Background()

	// JSON is the canonical output; a failure here aborts the run.
	jsonSink := output.NewJSONOutput(cfg.OutputPath, cfg.OutputFolder)
	if err := jsonSink.WriteDataset(ctx, dataset); err != nil {
		return err
	}

	// Optional sinks fail independently of the JSON files and of each
	// other; failures are collected and reported at the end.
	var failed []string
	writeOptional := func(name string, build func() (output.DatasetSink, error)) {
		sink, err := build()
		if err != nil {
			runLog.WithError(err).Errorf("%s output unavailable", name)
			failed = append(failed, name)
			return
		}
		if err := sink.WriteDataset(ctx, dataset); err != nil {
			runLog.WithError(err).Errorf("%s output failed", name)
			failed = append(failed, name)
		}
		if err := sink.Close(); err != nil {
			runLog.WithError(err).Errorf("closing %s output", name)
		}
	}

	if cfg.ParquetEnabled {
		writeOptional("parquet", func() (output.DatasetSink, error) {
			return output.NewParquetOutput(cfg.OutputPath, cfg.OutputFolder), nil
		})
	}
	if cfg.MongoEnabled {
		writeOptional("mongo", func() (output.DatasetSink, error) {
			return output.NewMongoOutput(ctx, cfg.Mongo)
		})
	}
	if cfg.PostgresEnabled {
		writeOptional("postgres", func() (output.DatasetSink, error) {
			return output.NewPostgresOutput(ctx, cfg.Postgres)
		})
	}
	if cfg.KafkaEnabled {
		writeOptional("kafka", func() (output.DatasetSink, error) {
			return output.NewKafkaOutput(cfg)
		})
	}
	if cfg.CloudStorage.BucketName != "" {
		writeOptional("s3", func() (output.DatasetSink, error) {
			return output.NewS3Output(cfg.CloudStorage, cfg.OutputFolder)
		})
	}

	if len(failed) > 0 {
		return fmt.Errorf("dataset written, but %d optional output(s) failed: %v", len(failed), failed)
	}

	runLog.Info("dataset generation complete")
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Int64("seed", 8675309, "Random seed for reproducible datasets")
	rootCmd.Flags().Int("orders", 480, "Number of synthetic orders to generate")
	rootCmd.Flags().Int("customers", 60, "Number of synthetic customers to generate")
	rootCmd.Flags().Int("menu-items", 24, "Number of menu items to include")
	rootCmd.Flags().Int("staff", 12, "Number of staff users to generate")
	rootCmd.Flags().String("anchor-date", defaultAnchorDate, "Anchor date for the historical order window")
	rootCmd.Flags().String("output-path", "data", "Directory for the JSON output files")
	rootCmd.Flags().String("output-folder", "", "Subfolder under the output path")
	rootCmd.Flags().Bool("progress", true, "Show a progress bar during generation")
	rootCmd.Flags().Bool("insert", false, "Insert the generated dataset into MongoDB")
	rootCmd.Flags().String("mongo-uri", "", "MongoDB connection string (or MONGODB_URI)")
	rootCmd.Flags().String("mongo-database", "restaurant_management", "MongoDB database name")
	rootCmd.Flags().Bool("postgres", false, "Bulk-load the dataset into Postgres")
	rootCmd.Flags().Bool("parquet", false, "Additionally write Parquet files")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish the dataset to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("kafka-topic-prefix", "restogen.", "Prefix for Kafka collection topics")
	rootCmd.Flags().String("s3-bucket", "", "Upload the JSON output to this S3 bucket")
	rootCmd.Flags().String("s3-region", "us-east-1", "S3 bucket region")

	bindings := map[string]string{
		"seed":                      "seed",
		"orders":                    "orders",
		"customers":                 "customers",
		"menu_items":                "menu-items",
		"staff":                     "staff",
		"anchor_date":               "anchor-date",
		"output_path":               "output-path",
		"output_folder":             "output-folder",
		"show_progress":             "progress",
		"insert":                    "insert",
		"mongo_uri":                 "mongo-uri",
		"mongo_database":            "mongo-database",
		"postgres":                  "postgres",
		"parquet":                   "parquet",
		"kafka_enabled":             "kafka-enabled",
		"kafka_broker_list":         "kafka-broker-list",
		"kafka_topic_prefix":        "kafka-topic-prefix",
		"cloud_storage.bucket_name": "s3-bucket",
		"cloud_storage.region":      "s3-region",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			cobra.CheckErr(err)
		}
	}

	// the original tooling reads these from .env
	_ = viper.BindEnv("mongo_uri", "MONGODB_URI", "MONGO_URI")
	_ = viper.BindEnv("mongo_database", "MONGODB_DATABASE", "DB_NAME")
	_ = viper.BindEnv("postgres_conn.host", "POSTGRES_HOST")
	_ = viper.BindEnv("postgres_conn.port", "POSTGRES_PORT")
	_ = viper.BindEnv("postgres_conn.user", "POSTGRES_USER")
	_ = viper.BindEnv("postgres_conn.password", "POSTGRES_PASSWORD")
	_ = viper.BindEnv("postgres_conn.dbname", "POSTGRES_DB")
	_ = viper.BindEnv("postgres_conn.sslmode", "POSTGRES_SSLMODE")

	viper.SetDefault("postgres_conn.host", "localhost")
	viper.SetDefault("postgres_conn.port", "5432")
	viper.SetDefault("postgres_conn.user", "postgres")
	viper.SetDefault("postgres_conn.password", "postgres")
	viper.SetDefault("postgres_conn.dbname", "restaurant_management")
	viper.SetDefault("postgres_conn.sslmode", "disable")
	viper.SetDefault("cloud_storage.provider", "s3")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
