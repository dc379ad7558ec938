// Package http provides an HTTP client for downloading images.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Streaming downloads in fixed-size chunks
//   - Typed errors for non-2xx responses
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	n, err := client.DownloadFile(ctx, imageURL, "/images/5901234123457-1.jpg", nil)
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println("server answered", statusErr.StatusCode)
//	}
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
