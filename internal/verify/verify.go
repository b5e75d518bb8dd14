// Package verify compares downloaded content against the digests the
// service reported for the object. Comparison happens on the decoded digest
// bytes, never on the base64 text.
package verify

import (
	"bytes"
	"crypto/md5" //nolint:gosec // MD5 is the service's integrity digest, not used cryptographically
	"encoding/base64"
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"hash/crc32"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
)

// castagnoli is the CRC32C polynomial table used by the service.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Verifier computes and compares content digests. The digest functions are
// fields so tests can observe exactly which computations a mode triggers.
type Verifier struct {
	// MD5Sum returns the raw MD5 digest of data.
	MD5Sum func(data []byte) []byte

	// CRC32CSum returns the raw big-endian CRC32C digest of data.
	CRC32CSum func(data []byte) []byte
}

// New returns a Verifier backed by the standard digest implementations.
func New() *Verifier {
	return &Verifier{
		MD5Sum:    md5Sum,
		CRC32CSum: crc32cSum,
	}
}

// Verify checks data against the remote base64 digests according to mode.
// VerifyNone touches neither digest. Under VerifyAll both digests are
// computed unconditionally and every mismatch is reported; a failing MD5
// never short-circuits the CRC32C computation. A remote digest that the
// service did not report (empty string) is skipped rather than failed.
func (v *Verifier) Verify(mode gcstypes.VerifyMode, data []byte, remoteMD5, remoteCRC32C string) error {
	if mode == "" {
		mode = gcstypes.VerifyMD5
	}

	var errs []error
	switch mode {
	case gcstypes.VerifyNone:
		return nil
	case gcstypes.VerifyMD5:
		errs = append(errs, v.compareMD5(data, remoteMD5))
	case gcstypes.VerifyCRC32C:
		errs = append(errs, v.compareCRC32C(data, remoteCRC32C))
	case gcstypes.VerifyAll:
		errs = append(errs, v.compareMD5(data, remoteMD5), v.compareCRC32C(data, remoteCRC32C))
	default:
		return fmt.Errorf("%w: unknown verify mode %q", errors.ErrInvalidInput, mode)
	}

	return stderrors.Join(errs...)
}

func (v *Verifier) compareMD5(data []byte, remote string) error {
	local := v.MD5Sum(data)
	return compare("md5", local, remote)
}

func (v *Verifier) compareCRC32C(data []byte, remote string) error {
	local := v.CRC32CSum(data)
	return compare("crc32c", local, remote)
}

func compare(kind string, local []byte, remote string) error {
	if remote == "" {
		// The service omits digests for some objects (e.g. composite
		// objects lack MD5). Nothing to compare against.
		return nil
	}
	want, err := base64.StdEncoding.DecodeString(remote)
	if err != nil {
		return fmt.Errorf("%w: undecodable remote %s digest %q: %v", errors.ErrVerification, kind, remote, err)
	}
	if !bytes.Equal(local, want) {
		return fmt.Errorf("%w: %s digest mismatch, got %s want %s",
			errors.ErrVerification, kind, base64.StdEncoding.EncodeToString(local), remote)
	}
	return nil
}

func md5Sum(data []byte) []byte {
	sum := md5.Sum(data) //nolint:gosec // integrity check mandated by the service API
	return sum[:]
}

func crc32cSum(data []byte) []byte {
	sum := crc32.Checksum(data, castagnoli)
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, sum)
	return out
}
