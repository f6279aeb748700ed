// Package imageload turns user-selected photos into data URIs that can be
// embedded in a journey record and rendered inline.
//
// Loads are asynchronous and single-shot: Load returns a Future right away
// and decoding happens on its own goroutine. Starting a newer load under the
// same key supersedes every older one; their results are dropped.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var (
	// ErrSuperseded is returned by Future.Wait when a newer load under the
	// same key started before this one finished.
	ErrSuperseded = errors.New("image load superseded")

	// ErrTooLarge is returned when the photo exceeds the loader's size cap.
	ErrTooLarge = errors.New("image too large")

	// ErrNotImage is returned when the file is empty or not an image.
	ErrNotImage = errors.New("file is not an image")
)

const (
	DefaultMaxBytes    = 10 << 20
	DefaultConcurrency = 4
)

// Loader decodes photos into data URIs with bounded concurrency.
type Loader struct {
	maxBytes int64
	sem      *semaphore.Weighted

	seq    atomic.Uint64
	mu     sync.Mutex
	latest map[string]uint64
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxBytes caps the decoded photo size. Non-positive values are ignored.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// WithConcurrency bounds how many photos are read at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// New constructs a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		maxBytes: DefaultMaxBytes,
		sem:      semaphore.NewWeighted(DefaultConcurrency),
		latest:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Future is the pending result of a Load.
type Future struct {
	cancel context.CancelFunc
	done   chan struct{}

	// Written by the decoding goroutine before done is closed.
	data  string
	err   error
	stale bool
}

// Load starts decoding f under key and returns immediately.
// A nil f means no photo was selected: the returned Future is already
// resolved with an empty result and supersedes nothing.
func (l *Loader) Load(ctx context.Context, key string, f *File) *Future {
	if f == nil {
		done := make(chan struct{})
		close(done)
		return &Future{done: done, cancel: func() {}}
	}

	gen := l.seq.Add(1)
	l.mu.Lock()
	l.latest[key] = gen
	l.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	fut := &Future{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(fut.done)
		defer cancel()
		fut.data, fut.err = l.decode(ctx, f)
		fut.stale = !l.release(key, gen)
	}()
	return fut
}

// Wait blocks until the load finishes or ctx is done.
// It returns "" and a nil error for an empty selection.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if f.stale {
		return "", ErrSuperseded
	}
	return f.data, f.err
}

// Cancel aborts an in-flight load. Wait then reports context.Canceled
// unless the decode had already finished.
func (f *Future) Cancel() {
	f.cancel()
}

// release reports whether gen is still the latest load for key and, if so,
// forgets the key. Every load releases when its decode ends, whether or not
// anyone waits for it, so the map only holds keys with a load in flight.
func (l *Loader) release(key string, gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.latest[key] != gen {
		return false
	}
	delete(l.latest, key)
	return true
}

func (l *Loader) decode(ctx context.Context, f *File) (string, error) {
	if f.Size > l.maxBytes {
		return "", fmt.Errorf("imageload: %s: %w", f.Name, ErrTooLarge)
	}
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer l.sem.Release(1)

	rc, err := f.open()
	if err != nil {
		return "", fmt.Errorf("imageload: open %s: %w", f.Name, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(io.LimitReader(ctxReader{ctx: ctx, r: rc}, l.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("imageload: read %s: %w", f.Name, err)
	}
	if int64(len(b)) > l.maxBytes {
		return "", fmt.Errorf("imageload: %s: %w", f.Name, ErrTooLarge)
	}

	mediaType := detectMediaType(f.ContentType, b)
	if len(b) == 0 || !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("imageload: %s: %w", f.Name, ErrNotImage)
	}
	return DataURI(mediaType, b), nil
}

// detectMediaType prefers the client-declared image type and falls back to
// content sniffing. Parameters are dropped.
func detectMediaType(declared string, b []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}
	mt, _, err := mime.ParseMediaType(http.DetectContentType(b))
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
