package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wkncstats/sitesync/pkg/executor"
	"github.com/wkncstats/sitesync/pkg/logger"
	"github.com/wkncstats/sitesync/pkg/mimetable"
	"github.com/wkncstats/sitesync/pkg/planner"
	"github.com/wkncstats/sitesync/pkg/s3client"
)

type syncFlags struct {
	dryRun         bool
	deleteFlag     bool
	excludes       []string
	quiet          bool
	verbose        bool
	concurrency    int
	planJSONFile   string
	resultJSONFile string
}

func newSyncCmd() *cobra.Command {
	var flags syncFlags

	cmd := &cobra.Command{
		Use:   "sync [LocalPath S3Uri]",
		Short: "Synchronize the site build directory with its S3 bucket",
		Long: `sync computes the set of objects that must exist for the local tree,
compares it with what the bucket currently holds, and uploads only what
changed. Objects missing locally are left alone unless --delete is given, so
the scheduled refresh function's data file survives a deploy.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dryrun", false, "Shows operations without executing")
	cmd.Flags().BoolVar(&flags.deleteFlag, "delete", false, "Delete remote objects not present locally")
	cmd.Flags().StringSliceVar(&flags.excludes, "exclude", nil, "Exclude patterns (multiple allowed)")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Enable debug output")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Number of concurrent operations (default from config)")
	cmd.Flags().StringVar(&flags.planJSONFile, "plan-json-file", "", "Path to output plan as JSON file")
	cmd.Flags().StringVar(&flags.resultJSONFile, "result-json-file", "", "Path to output result as JSON file")

	return cmd
}

func runSync(cmd *cobra.Command, args []string, flags syncFlags) error {
	if len(args) == 1 {
		return fmt.Errorf("either give both LocalPath and S3Uri or neither (using config)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	localPath := cfg.Site.Root
	bucket := cfg.Site.Bucket
	prefix := cfg.Site.Prefix
	if len(args) == 2 {
		localPath = args[0]
		bucket, prefix, err = s3client.ParseURI(args[1])
		if err != nil {
			return fmt.Errorf("invalid S3 URI: %w", err)
		}
	}

	deleteEnabled := flags.deleteFlag || cfg.Sync.Delete
	excludes := append(append([]string{}, cfg.Sync.Excludes...), flags.excludes...)
	concurrency := flags.concurrency
	if concurrency == 0 {
		concurrency = cfg.Sync.Concurrency
	}

	ctx := cmd.Context()

	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}
	client := s3client.NewAWSClient(awsCfg)

	syncLogger := &logger.SyncLogger{
		IsDryRun: flags.dryRun,
		IsQuiet:  flags.quiet,
	}
	var log logger.Logger = syncLogger
	if flags.verbose {
		log = &logger.VerboseLogger{SyncLogger: *syncLogger}
	}

	var table *mimetable.Table
	if cfg.Sync.DefaultContentType != "" {
		table = mimetable.Builtin().WithFallback(cfg.Sync.DefaultContentType)
	}

	plnr := planner.NewSyncPlanner(client, log)
	plan, err := plnr.Plan(ctx, localPath, bucket, prefix, planner.Options{
		DeleteEnabled: deleteEnabled,
		Excludes:      excludes,
		Manifest: planner.ManifestOptions{
			Excludes:     excludes,
			Table:        table,
			SniffUnknown: cfg.Sync.SniffUnknown,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}

	if flags.planJSONFile != "" {
		if err := writePlanJSON(flags.planJSONFile, plan, bucket, prefix); err != nil {
			return fmt.Errorf("failed to write plan JSON: %w", err)
		}
	}

	if flags.dryRun {
		for _, item := range plan.Uploads {
			syncLogger.Upload(item.Asset.LocalPath, formatS3Path(bucket, prefix, item.Key))
		}
		for _, item := range plan.Deletes {
			syncLogger.Delete(formatS3Path(bucket, prefix, item.Key))
		}
		return nil
	}

	start := time.Now()
	exec := executor.NewExecutor(client, log, concurrency)
	results := exec.Execute(ctx, plan, bucket, prefix)

	summary := summarize(plan, results, bucket, prefix)

	if flags.resultJSONFile != "" {
		if err := writeResultJSON(flags.resultJSONFile, summary); err != nil {
			return fmt.Errorf("failed to write result JSON: %w", err)
		}
	}

	syncLogger.PrintSummary(
		summary.Summary.Created+summary.Summary.Updated,
		summary.Summary.Deleted,
		summary.Summary.Failed,
		summary.bytesUploaded,
		time.Since(start),
	)

	if summary.Summary.Failed > 0 {
		return fmt.Errorf("%d operations failed", summary.Summary.Failed)
	}

	return nil
}

func formatS3Path(bucket, prefix, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, s3client.JoinKey(prefix, key))
}
