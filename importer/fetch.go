package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func isURL(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// fetch returns the raw bytes of a local file or an http(s) URL.
func fetch(ctx context.Context, client httpDoer, source string) ([]byte, error) {
	if !isURL(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", source, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("request %s failed with status %d: %s", source, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", source, err)
	}
	return data, nil
}

// InferFormat returns format when set, else derives it from the source's
// file extension. URLs are judged by their path, ignoring the query.
func InferFormat(source, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		normalized := normalizeFormat(format)
		if normalized == "" {
			return "", fmt.Errorf("unsupported input format: %s", format)
		}
		return normalized, nil
	}

	extension := filepath.Ext(source)
	if isURL(source) {
		if parsed, err := url.Parse(source); err == nil {
			extension = path.Ext(parsed.Path)
		}
	}

	normalized := normalizeFormat(extension)
	if normalized == "" {
		return "", fmt.Errorf("unsupported file extension for %s", source)
	}
	return normalized, nil
}
