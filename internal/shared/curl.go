// Utilities for capturing a browser session from a "Copy as cURL" command.
package shared

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// SessionCookieNames are the cookie names a Spring-style backend uses for its login session.
var SessionCookieNames = []string{"JSESSIONID", "SESSION"}

var (
	headerRegex = regexp.MustCompile(`(?:-H|--header)\s+'([^']+)'|(?:-H|--header)\s+"([^"]+)"`)
	cookieRegex = regexp.MustCompile(`(?:-b|--cookie)\s+'([^']+)'|(?:-b|--cookie)\s+"([^"]+)"`)
	urlRegex    = regexp.MustCompile(`curl\s+(?:--url\s+)?'([^']+)'|curl\s+(?:--url\s+)?"([^"]+)"|curl\s+(?:--url\s+)?(https?://\S+)`)
)

// CurlRequest represents the URL, headers, and cookies parsed from a cURL command.
type CurlRequest struct {
	URL     string
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts the request.
func ParseCurlFile(filepath string) (*CurlRequest, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command and extracts its URL, headers, and cookies.
//
// A cookie passed with -b takes precedence over a Cookie header.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	req := &CurlRequest{Headers: make(map[string]string)}

	if m := urlRegex.FindStringSubmatch(curlCmd); m != nil {
		req.URL = firstGroup(m)
	}

	var headerCookie string
	for _, match := range headerRegex.FindAllStringSubmatch(curlCmd, -1) {
		key, value, ok := strings.Cut(firstGroup(match), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if headerCookie == "" {
				headerCookie = value
			}
			continue
		}
		req.Headers[key] = value
	}

	if m := cookieRegex.FindStringSubmatch(curlCmd); m != nil {
		req.Cookie = firstGroup(m)
	} else {
		req.Cookie = headerCookie
	}

	if len(req.Headers) == 0 && req.Cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}

	return req, nil
}

// BaseURL returns the scheme and host of the request URL.
func (c *CurlRequest) BaseURL() (string, error) {
	if c.URL == "" {
		return "", fmt.Errorf("%w: curl command has no URL", ErrInvalidInput)
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid URL %q", ErrInvalidInput, c.URL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// SessionCookie returns a Cookie header value holding only the named cookies.
//
// With no names, the full cookie string is returned.
func (c *CurlRequest) SessionCookie(names ...string) (string, error) {
	if c.Cookie == "" {
		return "", ErrMissingSession
	}
	if len(names) == 0 {
		return c.Cookie, nil
	}

	cookies, err := http.ParseCookie(c.Cookie)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var kept []string
	for _, cookie := range cookies {
		for _, name := range names {
			if strings.EqualFold(cookie.Name, name) {
				kept = append(kept, cookie.Name+"="+cookie.Value)
			}
		}
	}

	if len(kept) == 0 {
		return "", fmt.Errorf("%w: expected one of %s", ErrMissingSession, strings.Join(names, ", "))
	}

	return strings.Join(kept, "; "), nil
}

func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
