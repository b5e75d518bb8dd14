// Package gcs provides client initialization and configuration.
//
// The Client provides a high-level interface for working with objects in a
// Google-Cloud-Storage-shaped service: fetching file handles, downloading
// with integrity verification, server-side copies through the rewrite
// protocol, and customer-supplied encryption key rotation.
package gcs

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/rs/zerolog"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/operations/rewrite"
)

// Client represents a storage client bound to a service transport.
// All object state lives server-side; the client itself only carries
// configuration and is safe for concurrent use.
type Client struct {
	// service is the storage service transport (or a mock in tests)
	service gcsapi.StorageAPI

	// log receives debug events from long-running operations
	log zerolog.Logger

	// rewriteMaxIterations caps rewrite calls per copy
	rewriteMaxIterations int

	// newRewriteBackOff builds the wait strategy between rewrite calls
	newRewriteBackOff func() backoff.BackOff

	// mu protects concurrent access to client configuration
	mu sync.RWMutex

	// fs is the filesystem abstraction for file operations
	fs fs.Filesystem
}

// New creates a new storage client around the provided service transport
// and applies the specified configuration options.
//
// Example:
//
//	client, err := gcs.New(transport,
//	    gcs.WithLogger(logger),
//	    gcs.WithRewriteMaxIterations(50),
//	)
func New(service gcsapi.StorageAPI, opts ...gcstypes.Option) (*Client, error) {
	if service == nil {
		return nil, errors.NewError("client initialization", errors.ErrInvalidInput).
			WithMessage("service transport cannot be nil")
	}

	cfg := &gcstypes.ClientConfig{
		Logger:               zerolog.Nop(),
		RewriteMaxIterations: rewrite.DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Default to the OS filesystem rooted at /
	filesystem := cfg.Filesystem
	if filesystem == nil {
		filesystem = billy.NewOSFS("/")
	}

	newBackOff := cfg.NewRewriteBackOff
	if newBackOff == nil {
		// The service paces rewrite progress server-side; a constant
		// second between calls is enough not to hammer it.
		newBackOff = func() backoff.BackOff {
			return backoff.NewConstantBackOff(time.Second)
		}
	}

	client := &Client{
		service:              service,
		log:                  cfg.Logger,
		rewriteMaxIterations: cfg.RewriteMaxIterations,
		newRewriteBackOff:    newBackOff,
		fs:                   filesystem,
	}

	return client, nil
}

// SetFilesystem sets the filesystem implementation for the client.
// This is useful for testing or when the filesystem needs to be changed after creation.
func (c *Client) SetFilesystem(filesystem fs.Filesystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fs = filesystem
}

// Close releases any resources held by the client.
// Currently a no-op but included for future extensibility.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return nil
}

// filesystem returns the current filesystem under the read lock.
func (c *Client) filesystem() fs.Filesystem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fs
}

// rewriter builds the rewrite operation worker for one copy.
func (c *Client) rewriter() *rewrite.Rewriter {
	return rewrite.New(c.service, c.log, c.rewriteMaxIterations, c.newRewriteBackOff)
}
