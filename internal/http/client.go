package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultChunkSize is the buffer size used to stream response bodies to disk.
const DefaultChunkSize = 8192

// Options configures a Client.
type Options struct {
	// Timeout bounds a whole request including the body transfer.
	// Zero means no timeout.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// ChunkSize is the copy buffer size in bytes; it bounds peak memory per download.
	ChunkSize int
}

// DefaultOptions returns the options used by NewClient when none are given.
func DefaultOptions() Options {
	return Options{
		Timeout:   60 * time.Second,
		UserAgent: "csv-image-downloader",
		ChunkSize: DefaultChunkSize,
	}
}

// StatusError is returned when a server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Client wraps HTTP operations for image downloads.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Streaming file download in fixed-size chunks
//
// Example usage:
//
//	client := NewClient(DefaultOptions())
//	n, err := client.DownloadFile(ctx, imageURL, "/images/5901234123457-1.jpg", nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
	chunkSize  int
}

// NewClient creates a new HTTP client.
//
// A non-positive ChunkSize falls back to DefaultChunkSize.
func NewClient(opts Options) *Client {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent: opts.UserAgent,
		chunkSize: opts.ChunkSize,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header, -1 if unknown).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// DownloadFile downloads url to destPath and returns the number of bytes written.
//
// The response body is streamed to disk through a buffer of the configured
// chunk size. Any 2xx response is accepted; content type and size are not
// checked. The destination is only created once a 2xx status has been
// received, and it is removed again if the transfer breaks off midway.
//
// Returns a *StatusError for non-2xx responses.
//
// Parameters:
//   - ctx: Context for the request
//   - url: URL to download from
//   - destPath: Local file path to save to (created or truncated)
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}

	// ProgressWriter hides *os.File's ReaderFrom, so CopyBuffer really uses our buffer.
	writer := &ProgressWriter{
		Writer:   file,
		Total:    resp.ContentLength,
		OnUpdate: onProgress,
	}
	_, err = io.CopyBuffer(writer, resp.Body, make([]byte, c.chunkSize))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		return 0, err
	}

	return writer.Written, nil
}
