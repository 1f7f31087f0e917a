// Package archive persists finalized execution results as JSON blobs,
// keyed by run id. It backs the run lookup endpoint and is optional:
// archiving failures are reported to the caller for logging, never to
// the run itself
package archive

import (
	"context"
	"encoding/json"
	"errors"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/flowcore/engine/pkg/api"
)

// Store archives execution results using gocloud.dev/blob, supporting
// S3, GCS, Azure Blob Storage, local files, and in-memory buckets
type Store struct {
	bucket *blob.Bucket
	prefix string
}

var ErrRunNotFound = errors.New("run not found in archive")

// NewStore opens the bucket behind the given URL (s3://, gs://,
// azblob://, file://, mem://)
func NewStore(ctx context.Context, bucketURL, prefix string) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	return &Store{bucket: bucket, prefix: prefix}, nil
}

// Put archives a finalized result under its run id
func (s *Store) Put(ctx context.Context, res *api.ExecutionResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.bucket.WriteAll(ctx, s.keyFor(res.RunID), data, nil)
}

// Get retrieves an archived result by run id
func (s *Store) Get(
	ctx context.Context, runID api.RunID,
) (*api.ExecutionResult, error) {
	data, err := s.bucket.ReadAll(ctx, s.keyFor(runID))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	var res api.ExecutionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes an archived result; deleting a missing run succeeds
func (s *Store) Delete(ctx context.Context, runID api.RunID) error {
	err := s.bucket.Delete(ctx, s.keyFor(runID))
	if err != nil && gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}
	return err
}

func (s *Store) Close() error {
	return s.bucket.Close()
}

// keyFor sanitizes the run id so hostile or malformed ids cannot escape
// the configured key prefix
func (s *Store) keyFor(runID api.RunID) string {
	return s.prefix + string(api.SanitizeID(runID)) + ".json"
}
