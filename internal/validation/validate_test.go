package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{name: "valid simple name", bucket: "my-bucket"},
		{name: "valid with dots", bucket: "my.bucket.example"},
		{name: "valid with underscores", bucket: "my_bucket_1"},
		{name: "minimum length", bucket: "abc"},
		{name: "maximum length", bucket: strings.Repeat("a", 63)},
		{name: "empty", bucket: "", wantErr: true},
		{name: "too short", bucket: "ab", wantErr: true},
		{name: "too long", bucket: strings.Repeat("a", 64), wantErr: true},
		{name: "uppercase rejected", bucket: "My-Bucket", wantErr: true},
		{name: "spaces rejected", bucket: "my bucket", wantErr: true},
		{name: "leading hyphen rejected", bucket: "-bucket", wantErr: true},
		{name: "trailing dot rejected", bucket: "bucket.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidBucketName)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateObjectName(t *testing.T) {
	tests := []struct {
		name    string
		object  string
		wantErr bool
	}{
		{name: "valid simple name", object: "file.txt"},
		{name: "valid nested path", object: "a/b/c/file.txt"},
		{name: "valid unicode", object: "日本語.txt"},
		{name: "maximum length", object: strings.Repeat("a", 1024)},
		{name: "empty", object: "", wantErr: true},
		{name: "too long", object: strings.Repeat("a", 1025), wantErr: true},
		{name: "invalid utf8", object: string([]byte{0xff, 0xfe}), wantErr: true},
		{name: "carriage return rejected", object: "file\rname", wantErr: true},
		{name: "line feed rejected", object: "file\nname", wantErr: true},
		{name: "single dot rejected", object: ".", wantErr: true},
		{name: "double dot rejected", object: "..", wantErr: true},
		{name: "dotfile allowed", object: ".hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectName(tt.object)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidObjectName)
				return
			}
			assert.NoError(t, err)
		})
	}
}
