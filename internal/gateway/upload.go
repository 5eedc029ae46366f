package gateway

import (
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/pkg/metrics"
)

// Uploader sends a binary to the media service and returns a durable URL.
type Uploader interface {
	Upload(data []byte, mediaType string) (string, error)
}

const uploadWorkers = 4

// uploadRunner executes uploads on a bounded worker pool and tracks one
// in-flight key per (field, entity) pair, so simultaneous uploads for
// different targets never clobber each other's progress indicator.
type uploadRunner struct {
	uploader Uploader
	pool     *ants.Pool

	mu       sync.Mutex
	inflight map[string]struct{}
}

func newUploadRunner(uploader Uploader) (*uploadRunner, error) {
	pool, err := ants.NewPool(uploadWorkers)
	if err != nil {
		return nil, errors.Wrap(err, "create upload pool")
	}
	return &uploadRunner{
		uploader: uploader,
		pool:     pool,
		inflight: make(map[string]struct{}),
	}, nil
}

func (r *uploadRunner) close() {
	r.pool.Release()
}

// UploadKey derives the in-flight key for a (field, entity) pair. Entity is
// "config" for site-config fields.
func UploadKey(field, entityID string) string {
	if entityID == "" {
		entityID = "config"
	}
	return fmt.Sprintf("%s-%s", field, entityID)
}

// UploadMedia sends the binary and blocks until the service answers. The
// returned URL must be captured before issuing the dependent update; the
// two are never concurrent for the same field. A second upload for a key
// already in flight is rejected rather than queued. No cancellation path:
// an upload runs to completion or failure.
func (g *Gateway) UploadMedia(data []byte, mediaType, field, entityID string) (string, error) {
	if !g.CanWrite() {
		zap.L().Debug("degraded mode, media upload skipped", zap.String("field", field))
		return "", nil
	}
	return g.uploads.run(data, mediaType, field, entityID)
}

// UploadsInFlight lists the keys currently uploading, sorted.
func (g *Gateway) UploadsInFlight() []string {
	g.uploads.mu.Lock()
	defer g.uploads.mu.Unlock()
	keys := make([]string, 0, len(g.uploads.inflight))
	for k := range g.uploads.inflight {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type uploadResult struct {
	url string
	err error
}

func (r *uploadRunner) run(data []byte, mediaType, field, entityID string) (string, error) {
	key := UploadKey(field, entityID)

	r.mu.Lock()
	if _, busy := r.inflight[key]; busy {
		r.mu.Unlock()
		return "", errors.Errorf("upload already in progress for %s", key)
	}
	r.inflight[key] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inflight, key)
		r.mu.Unlock()
	}()

	done := make(chan uploadResult, 1)
	err := r.pool.Submit(func() {
		url, err := r.uploader.Upload(data, mediaType)
		done <- uploadResult{url: url, err: err}
	})
	if err != nil {
		return "", errors.Wrap(err, "submit upload")
	}

	res := <-done
	if res.err != nil {
		metrics.IncrCounter("media_upload_fail")
		return "", res.err
	}
	metrics.IncrCounter("media_upload")
	zap.L().Info("media upload complete", zap.String("key", key), zap.String("url", res.url))
	return res.url, nil
}
