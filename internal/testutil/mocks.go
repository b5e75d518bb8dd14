// Package testutil provides test utilities and mocks for storage operations.
// This package is internal and should only be used for testing within the gcs module.
package testutil

import (
	"context"
	"errors"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
)

// MockStorageClient is a mock implementation of the StorageAPI interface for
// testing. It allows customization of each service operation through
// function fields and counts the calls it receives.
type MockStorageClient struct {
	GetObjectFunc      func(context.Context, *gcsapi.GetObjectRequest) (*gcsapi.Object, error)
	DownloadObjectFunc func(context.Context, *gcsapi.DownloadObjectRequest, io.Writer) (int64, error)
	DeleteObjectFunc   func(context.Context, *gcsapi.DeleteObjectRequest) error
	RewriteObjectFunc  func(context.Context, *gcsapi.RewriteObjectRequest) (*gcsapi.RewriteResponse, error)
	InsertObjectFunc   func(context.Context, *gcsapi.InsertObjectRequest, io.Reader) (*gcsapi.Object, error)
	PatchObjectFunc    func(context.Context, *gcsapi.PatchObjectRequest) (*gcsapi.Object, error)

	GetObjectCalls      int
	DownloadObjectCalls int
	DeleteObjectCalls   int
	RewriteObjectCalls  int
	InsertObjectCalls   int
	PatchObjectCalls    int
}

// Verify that the mock implements the service interface.
var _ gcsapi.StorageAPI = (*MockStorageClient)(nil)

// GetObject mocks the metadata fetch operation.
func (m *MockStorageClient) GetObject(ctx context.Context, req *gcsapi.GetObjectRequest) (*gcsapi.Object, error) {
	m.GetObjectCalls++
	if m.GetObjectFunc != nil {
		return m.GetObjectFunc(ctx, req)
	}
	return nil, errors.New("testutil: unexpected GetObject call")
}

// DownloadObject mocks the content download operation.
func (m *MockStorageClient) DownloadObject(
	ctx context.Context,
	req *gcsapi.DownloadObjectRequest,
	w io.Writer,
) (int64, error) {
	m.DownloadObjectCalls++
	if m.DownloadObjectFunc != nil {
		return m.DownloadObjectFunc(ctx, req, w)
	}
	return 0, errors.New("testutil: unexpected DownloadObject call")
}

// DeleteObject mocks the delete operation.
func (m *MockStorageClient) DeleteObject(ctx context.Context, req *gcsapi.DeleteObjectRequest) error {
	m.DeleteObjectCalls++
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(ctx, req)
	}
	return errors.New("testutil: unexpected DeleteObject call")
}

// RewriteObject mocks one rewrite protocol step.
func (m *MockStorageClient) RewriteObject(
	ctx context.Context,
	req *gcsapi.RewriteObjectRequest,
) (*gcsapi.RewriteResponse, error) {
	m.RewriteObjectCalls++
	if m.RewriteObjectFunc != nil {
		return m.RewriteObjectFunc(ctx, req)
	}
	return nil, errors.New("testutil: unexpected RewriteObject call")
}

// InsertObject mocks the upload operation.
func (m *MockStorageClient) InsertObject(
	ctx context.Context,
	req *gcsapi.InsertObjectRequest,
	r io.Reader,
) (*gcsapi.Object, error) {
	m.InsertObjectCalls++
	if m.InsertObjectFunc != nil {
		return m.InsertObjectFunc(ctx, req, r)
	}
	return nil, errors.New("testutil: unexpected InsertObject call")
}

// PatchObject mocks the metadata patch operation.
func (m *MockStorageClient) PatchObject(ctx context.Context, req *gcsapi.PatchObjectRequest) (*gcsapi.Object, error) {
	m.PatchObjectCalls++
	if m.PatchObjectFunc != nil {
		return m.PatchObjectFunc(ctx, req)
	}
	return nil, errors.New("testutil: unexpected PatchObject call")
}
