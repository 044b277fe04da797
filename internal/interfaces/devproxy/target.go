package devproxy

import (
	"fmt"
	"net/url"
	"strings"
)

func parseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy target must be an absolute URL: %q", raw)
	}
	// SetURL joins paths, so a bare trailing slash would double up
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u, nil
}
