// Package planner computes the desired state of a static site deployment and
// reconciles it against the objects already present in the target namespace.
// Planning issues no writes; the executor applies the resulting plan.
package planner

import (
	"context"

	"github.com/wkncstats/sitesync/pkg/logger"
	"github.com/wkncstats/sitesync/pkg/s3client"
)

// Options configures one planning run.
type Options struct {
	DeleteEnabled bool
	Excludes      []string
	Manifest      ManifestOptions
}

// SyncPlanner plans a local tree against an S3 namespace.
type SyncPlanner struct {
	client s3client.Client
	logger logger.Logger
}

func NewSyncPlanner(client s3client.Client, log logger.Logger) *SyncPlanner {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &SyncPlanner{
		client: client,
		logger: log,
	}
}

// Plan builds the local manifest, lists the remote namespace once, and
// reconciles the two. A failed listing is a remote query error; the planner
// never treats it as an empty namespace, which would wrongly skip deletes and
// mask drift.
func (p *SyncPlanner) Plan(ctx context.Context, localRoot, bucket, prefix string, opts Options) (Plan, error) {
	manifestOpts := opts.Manifest
	if manifestOpts.Excludes == nil {
		manifestOpts.Excludes = opts.Excludes
	}

	manifest, err := BuildManifest(localRoot, manifestOpts)
	if err != nil {
		return Plan{}, err
	}
	p.logger.Debug("planned %d local assets under %s", len(manifest), localRoot)

	objects, err := p.client.ListObjects(ctx, &s3client.ListObjectsRequest{
		Bucket: bucket,
		Prefix: prefix,
	})
	if err != nil {
		return Plan{}, newError(ErrRemoteQuery, "", err)
	}

	remote := make(map[string]string, len(objects))
	for _, obj := range objects {
		remote[obj.Key] = obj.Fingerprint
	}
	p.logger.Debug("listed %d remote objects in s3://%s/%s", len(remote), bucket, prefix)

	return Reconcile(manifest, remote, opts.DeleteEnabled), nil
}
