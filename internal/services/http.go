package services

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

func newHTTPClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &http.Client{Jar: jar, Timeout: timeout}, nil
}

func trimSlash(s string) string {
	return strings.TrimRight(s, "/")
}
