// Package executor applies a sync plan against the storage collaborator.
package executor

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/wkncstats/sitesync/pkg/logger"
	"github.com/wkncstats/sitesync/pkg/planner"
	"github.com/wkncstats/sitesync/pkg/s3client"
)

const defaultConcurrency = 32

// Executor performs the uploads and deletes of a plan with bounded
// concurrency. Planning stays single-threaded; only the network-bound
// application fans out.
type Executor struct {
	client      s3client.Client
	logger      logger.Logger
	concurrency int
}

func NewExecutor(client s3client.Client, log logger.Logger, concurrency int) *Executor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &Executor{
		client:      client,
		logger:      log,
		concurrency: concurrency,
	}
}

// Result is the outcome of one operation.
type Result struct {
	Item  planner.Item
	Error error
}

// Execute applies the plan's uploads and deletes to bucket/prefix and
// returns one result per operation. Unchanged items are only logged.
// Failures do not stop the remaining operations; the caller decides whether
// the run failed.
func (e *Executor) Execute(ctx context.Context, plan planner.Plan, bucket, prefix string) []Result {
	for _, item := range plan.Unchanged {
		e.logger.Skip(e.targetURI(bucket, prefix, item.Key))
	}

	items := make([]planner.Item, 0, len(plan.Uploads)+len(plan.Deletes))
	items = append(items, plan.Uploads...)
	items = append(items, plan.Deletes...)

	results := make([]Result, len(items))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, itm planner.Item) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			err := e.executeItem(ctx, itm, bucket, prefix)
			if err != nil {
				e.logger.Error(string(itm.Action), e.targetURI(bucket, prefix, itm.Key), err)
			}

			results[idx] = Result{
				Item:  itm,
				Error: err,
			}
		}(i, item)
	}

	wg.Wait()
	return results
}

func (e *Executor) executeItem(ctx context.Context, item planner.Item, bucket, prefix string) error {
	switch item.Action {
	case planner.ActionUpload:
		return e.uploadAsset(ctx, item, bucket, prefix)
	case planner.ActionDelete:
		return e.deleteObject(ctx, item, bucket, prefix)
	default:
		return nil
	}
}

func (e *Executor) uploadAsset(ctx context.Context, item planner.Item, bucket, prefix string) error {
	file, err := os.Open(item.Asset.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	e.logger.Upload(item.Asset.LocalPath, e.targetURI(bucket, prefix, item.Key))

	err = e.client.PutObject(ctx, &s3client.PutObjectRequest{
		Bucket:      bucket,
		Key:         s3client.JoinKey(prefix, item.Key),
		Body:        file,
		Size:        item.Asset.Size,
		ContentType: item.Asset.ContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}

	return nil
}

func (e *Executor) deleteObject(ctx context.Context, item planner.Item, bucket, prefix string) error {
	e.logger.Delete(e.targetURI(bucket, prefix, item.Key))

	err := e.client.DeleteObject(ctx, &s3client.DeleteObjectRequest{
		Bucket: bucket,
		Key:    s3client.JoinKey(prefix, item.Key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	return nil
}

func (e *Executor) targetURI(bucket, prefix, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, s3client.JoinKey(prefix, key))
}
