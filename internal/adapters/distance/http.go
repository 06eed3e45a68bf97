package distance

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Upper bound on an error body copied into httpStatusError.
const maxErrorBody = 2048

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// do executes req and turns any non-2xx response into an httpStatusError.
// There are no retries; a failed call fails the whole request.
func do(session *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// decodeJSON executes req and decodes a successful response body into v.
func decodeJSON(session *http.Client, req *http.Request, v any) error {
	resp, err := do(session, req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
