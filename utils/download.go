package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// DownloadFile downloads a strokes file from the internet and saves it into a temporary file.
func DownloadFile(uri string) (*os.File, error) {
	res, err := http.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to download the strokes file from URI %q: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download the strokes file from URI %q: status %v", uri, res.Status)
	}

	tmpfile, err := os.CreateTemp("", "strokes")
	if err != nil {
		return nil, fmt.Errorf("unable to create a temporary file: %w", err)
	}

	if _, err := io.Copy(tmpfile, res.Body); err != nil {
		return nil, fmt.Errorf("unable to copy the source URI into the destination file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, err
	}

	ctype, err := DetectContentType(tmpfile.Name())
	if err != nil {
		return nil, err
	}

	// A strokes file is JSON, which the sniffer reports as plain text.
	if !strings.Contains(ctype, "text/plain") && !strings.Contains(ctype, "application/json") {
		return nil, fmt.Errorf("the downloaded file is not a valid strokes file, detected type: %s", ctype)
	}

	return os.Open(tmpfile.Name())
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	if _, err := url.ParseRequestURI(uri); err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
