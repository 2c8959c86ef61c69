// Package download fetches ontology files over HTTP into a local directory.
// It is a collaborator of the ontology core: it either produces a readable
// local file or fails with a *types.DownloadError.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/untoldecay/easyowl/internal/debug"
	"github.com/untoldecay/easyowl/internal/types"
)

const (
	ChunkSize          = 8192
	DefaultDir         = "data"
	DefaultTimeout     = 300 * time.Second
	DefaultLockTimeout = 30 * time.Second

	lockRetryDelay = 100 * time.Millisecond
)

var (
	// ErrInvalidURL is returned for anything but an http or https URL.
	ErrInvalidURL = errors.New("invalid URL scheme (must be http or https)")
	// ErrUnsafeFilename is returned when the target name could escape Dir.
	ErrUnsafeFilename = errors.New("unsafe filename")
)

// Options controls Fetch. Zero values select the defaults above.
type Options struct {
	Dir         string
	Filename    string
	Timeout     time.Duration
	LockTimeout time.Duration
	Client      *http.Client
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.LockTimeout <= 0 {
		o.LockTimeout = DefaultLockTimeout
	}
	if o.Client == nil {
		o.Client = &http.Client{}
	}
	return o
}

// Filename resolves the local name for rawURL: override when set, else the
// last path segment of the URL.
func Filename(rawURL, override string) (string, error) {
	name := override
	if name == "" {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
		}
		name = u.Path[strings.LastIndex(u.Path, "/")+1:]
	}
	if name == "" {
		return "", fmt.Errorf("%w: could not determine filename from URL: %s", ErrUnsafeFilename, rawURL)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeFilename, name)
	}
	return name, nil
}

// Fetch downloads rawURL into opts.Dir and returns the written path. The
// destination is locked for the duration of the transfer so concurrent
// fetches of the same file serialise, and the body is written to a
// temporary file that replaces the destination only on success.
func Fetch(ctx context.Context, rawURL string, opts Options) (string, error) {
	opts = opts.withDefaults()

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	name, err := Filename(rawURL, opts.Filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", &types.DownloadError{URL: rawURL, Reason: "failed to create " + opts.Dir, Err: err}
	}
	dest := filepath.Join(opts.Dir, name)

	lock := flock.New(dest + ".lock")
	lockCtx, cancelLock := context.WithTimeout(ctx, opts.LockTimeout)
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	cancelLock()
	if err != nil || !locked {
		return "", &types.DownloadError{URL: rawURL, Reason: "another download of " + dest + " is in progress", Err: err}
	}
	defer func() { _ = lock.Unlock() }()

	if _, err := os.Stat(dest); err == nil {
		debug.Logf("file already exists, overwriting: %s", dest)
	}

	reqCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &types.DownloadError{URL: rawURL, Reason: "download failed", Err: err}
	}
	resp, err := opts.Client.Do(req)
	if err != nil {
		return "", transportError(rawURL, opts.Timeout, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &types.DownloadError{URL: rawURL, Reason: fmt.Sprintf("HTTP error %d", resp.StatusCode)}
	}

	n, err := writeAtomic(dest, resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", transportError(rawURL, opts.Timeout, err)
		}
		return "", &types.DownloadError{URL: rawURL, Reason: "failed to write file to " + dest, Err: err}
	}

	debug.Logf("downloaded %d bytes from %s to %s", n, rawURL, dest)
	return dest, nil
}

func writeAtomic(dest string, body io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return 0, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.CopyBuffer(tmp, body, make([]byte, ChunkSize))
	if err != nil {
		_ = tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	return n, os.Rename(tmp.Name(), dest)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func transportError(rawURL string, timeout time.Duration, err error) error {
	if isTimeout(err) {
		return &types.DownloadError{URL: rawURL, Reason: fmt.Sprintf("download timed out after %v", timeout), Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &types.DownloadError{URL: rawURL, Reason: "download cancelled", Err: err}
	}
	return &types.DownloadError{URL: rawURL, Reason: "connection failed", Err: err}
}
