// Package rewrite drives the server-side rewrite protocol to completion.
//
// A rewrite is a sequence of service calls: each call moves some bytes and
// either reports completion or returns a continuation token to thread into
// the next call. The metadata patch, predefined ACL, and encryption headers
// stay constant across the whole sequence; only the token changes.
package rewrite

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
)

// DefaultMaxIterations caps the rewrite calls one copy may issue. The
// service advances at least some bytes per call, so a well-behaved rewrite
// of any practical object finishes far below this.
const DefaultMaxIterations = 100

// Rewriter handles copy and rotation operations through the rewrite protocol.
type Rewriter struct {
	client        gcsapi.StorageAPI
	log           zerolog.Logger
	maxIterations int
	newBackOff    func() backoff.BackOff
}

// New creates a new Rewriter instance. A fresh BackOff is taken from
// newBackOff for every Rewrite call, so one Rewriter can serve concurrent
// copies without shared backoff state.
func New(client gcsapi.StorageAPI, log zerolog.Logger, maxIterations int, newBackOff func() backoff.BackOff) *Rewriter {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if newBackOff == nil {
		newBackOff = func() backoff.BackOff {
			return backoff.NewConstantBackOff(time.Second)
		}
	}
	return &Rewriter{
		client:        client,
		log:           log,
		maxIterations: maxIterations,
		newBackOff:    newBackOff,
	}
}

// Request describes one logical copy. Everything here is held constant
// across the rewrite iterations.
type Request struct {
	SourceBucket      string
	SourceName        string
	DestinationBucket string
	DestinationName   string

	Patch            *gcsapi.ObjectPatch
	PredefinedACL    string
	SourceGeneration int64
	Headers          map[string]string
}

// Rewrite runs the rewrite loop until the service reports completion and
// returns the destination object's metadata. The context is checked between
// iterations; cancellation aborts the wait immediately.
func (r *Rewriter) Rewrite(ctx context.Context, req *Request) (*gcsapi.Object, error) {
	serviceReq := &gcsapi.RewriteObjectRequest{
		SourceBucket:             req.SourceBucket,
		SourceName:               req.SourceName,
		DestinationBucket:        req.DestinationBucket,
		DestinationName:          req.DestinationName,
		Patch:                    req.Patch,
		DestinationPredefinedACL: req.PredefinedACL,
		SourceGeneration:         req.SourceGeneration,
	}
	if len(req.Headers) > 0 {
		serviceReq.Headers = req.Headers
	}

	bo := r.newBackOff()

	for iteration := 1; ; iteration++ {
		resp, err := r.client.RewriteObject(ctx, serviceReq)
		if err != nil {
			return nil, errors.NewError("rewrite", err).
				WithBucket(req.DestinationBucket).
				WithObject(req.DestinationName)
		}

		if resp.Done {
			if resp.Resource == nil {
				return nil, errors.NewError("rewrite", fmt.Errorf("service reported completion without a resource")).
					WithBucket(req.DestinationBucket).
					WithObject(req.DestinationName)
			}
			r.log.Debug().
				Str("bucket", req.DestinationBucket).
				Str("object", req.DestinationName).
				Int("iterations", iteration).
				Int64("size", resp.ObjectSize).
				Msg("rewrite complete")
			return resp.Resource, nil
		}

		r.log.Debug().
			Str("bucket", req.DestinationBucket).
			Str("object", req.DestinationName).
			Int("iteration", iteration).
			Int64("rewritten", resp.TotalBytesRewritten).
			Int64("size", resp.ObjectSize).
			Msg("rewrite in progress")

		if iteration >= r.maxIterations {
			return nil, errors.NewError("rewrite", errors.ErrRewriteIncomplete).
				WithBucket(req.DestinationBucket).
				WithObject(req.DestinationName).
				WithMessage(fmt.Sprintf("gave up after %d iterations, last token %q", iteration, resp.RewriteToken))
		}

		// Only the token varies between iterations.
		serviceReq.RewriteToken = resp.RewriteToken

		if err := r.wait(ctx, bo); err != nil {
			return nil, errors.NewError("rewrite", err).
				WithBucket(req.DestinationBucket).
				WithObject(req.DestinationName)
		}
	}
}

// wait blocks for the backoff's next interval or until the context is done.
func (r *Rewriter) wait(ctx context.Context, bo backoff.BackOff) error {
	next := bo.NextBackOff()
	if next == backoff.Stop {
		return fmt.Errorf("%w: backoff exhausted", errors.ErrRewriteIncomplete)
	}
	if next <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(next)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
