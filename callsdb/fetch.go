package callsdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"adifc/misc"
)

// IsURL reports whether source should be downloaded rather than opened.
func IsURL(src string) bool {
	s := strings.ToLower(src)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads url into temporary file in dir (system temporary directory
// when empty) and returns its name. Caller is responsible for removing it.
func Fetch(ctx context.Context, client *http.Client, url, dir string, log *zap.Logger) (name string, err error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", misc.GetAppName()+"/"+misc.GetVersion())

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unable to download %s: %s", url, resp.Status)
	}

	out, err := os.CreateTemp(dir, misc.GetAppName()+"-uls-*.zip")
	if err != nil {
		return "", err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
		if err != nil {
			os.Remove(out.Name())
			name = ""
		}
	}()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return "", fmt.Errorf("unable to download %s: %w", url, err)
	}
	log.Debug("Downloaded", zap.String("url", url), zap.String("file", out.Name()), zap.Int64("size", n))
	return out.Name(), nil
}
