package download

import (
	"context"
	"crypto/md5" // nolint:gosec // md5 is used to match export checksums, not for security.
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/metal-toolbox/fleetdash/internal/metrics"
)

var (
	downloadRetryDelay = 4 * time.Second
	// allow upto 2 minutes of timeout for downloading large exports over slow connections
	downloadClientTimeout = 120 * time.Second
	// exports larger than this are refused
	maxExportBytes int64 = 256 << 20

	ErrDownload = errors.New("error downloading export")
	ErrChecksum = errors.New("error validating export checksum")
	ErrFormat   = errors.New("bad checksum format")
	ErrTooLarge = errors.New("export exceeds size limit")
)

// FromURL fetches the CSV export at exportURL.
func FromURL(ctx context.Context, exportURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(ErrDownload, err.Error())
	}

	requestRetryable, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, errors.Wrap(ErrDownload, err.Error())
	}

	client := retryablehttp.NewClient()
	client.RetryWaitMin = downloadRetryDelay
	client.Logger = nil
	client.HTTPClient.Timeout = downloadClientTimeout

	startTS := time.Now()

	resp, err := client.Do(requestRetryable)
	if err != nil {
		return nil, errors.Wrap(ErrDownload, err.Error())
	}
	defer resp.Body.Close()

	// Check server response
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrap(ErrDownload, fmt.Sprintf("URL: %s, status code %s", exportURL, resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBytes+1))
	if err != nil {
		return nil, errors.Wrap(ErrDownload, err.Error())
	}

	if int64(len(data)) > maxExportBytes {
		return nil, errors.Wrap(ErrTooLarge, exportURL)
	}

	metrics.DownloadBytes.WithLabelValues(hostOf(req)).Add(float64(len(data)))
	metrics.DownloadRunTimeSummary.WithLabelValues(hostOf(req)).Observe(time.Since(startTS).Seconds())

	return data, nil
}

func hostOf(req *http.Request) string {
	if req.URL == nil {
		return ""
	}

	return req.URL.Host
}

// ChecksumValidate verifies data against checksum given as <digest>:<hex>, a bare hex value is an md5sum.
func ChecksumValidate(data []byte, checksum string) error {
	// no checksum prefix, default to md5sum
	if !strings.Contains(checksum, ":") {
		return checksumCompare(fmt.Sprintf("%x", md5.Sum(data)), checksum) // nolint:gosec // see import
	}

	parts := strings.Split(checksum, ":")
	if len(parts) != 2 {
		return errors.Wrap(ErrFormat, "invalid checksum: "+checksum)
	}

	switch parts[0] {
	case "md5sum":
		return checksumCompare(fmt.Sprintf("%x", md5.Sum(data)), parts[1]) // nolint:gosec // see import
	case "sha256":
		return checksumCompare(fmt.Sprintf("%x", sha256.Sum256(data)), parts[1])
	default:
		return errors.Wrap(ErrFormat, "unsupported digest: "+parts[0])
	}
}

func checksumCompare(calculated, expected string) error {
	if !strings.EqualFold(calculated, strings.TrimSpace(expected)) {
		return errors.Wrap(ErrChecksum, fmt.Sprintf("expected: %s, got: %s", expected, calculated))
	}

	return nil
}

// Checksum returns the sha256 checksum of data in the format accepted by ChecksumValidate.
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}
