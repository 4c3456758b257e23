package httputil

import (
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// Do executes a single HTTP request and treats any non-2xx status as an
// error, reading a short snippet of the response body for the message.
// There is deliberately no retry loop here: every caller degrades by
// falling back to backup data instead.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}

// DoJSON executes the request via Do and decodes the response body into out.
func DoJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := Do(client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
