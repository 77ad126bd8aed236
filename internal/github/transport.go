package github

import (
	"bytes"
	"io"
	"net/http"
	"regexp"
)

// emptyTimestamp matches the timestamp fields of the listings when they carry "" instead of a time.
var emptyTimestamp = regexp.MustCompile(`"(created_at|updated_at|closed_at|merged_at|date)"\s*:\s*""`)

// timestampTransport rewrites empty timestamps to null so a single odd record
// does not fail the decode of a whole page.
type timestampTransport struct {
	base http.RoundTripper
}

func (t *timestampTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	body = emptyTimestamp.ReplaceAll(body, []byte(`"$1":null`))
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	resp.Header.Del("Content-Length")
	return resp, nil
}
