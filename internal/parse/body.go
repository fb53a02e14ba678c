package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnsupportedContentType is returned when a body is neither form-encoded
// nor valid JSON.
var ErrUnsupportedContentType = errors.New("unsupported content type")

// Body decodes a browser request body into flat string parameters. JSON and
// form-encoded bodies are accepted; any other content type is tried as JSON.
func Body(contentType string, raw []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]string{}, nil
	}

	switch {
	case strings.Contains(contentType, "application/json"):
		return jsonBody(raw)
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return formBody(raw)
	default:
		params, err := jsonBody(raw)
		if err != nil {
			return nil, ErrUnsupportedContentType
		}
		return params, nil
	}
}

func formBody(raw []byte) (map[string]string, error) {
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	params := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			params[key] = v[0]
		}
	}
	return params, nil
}

func jsonBody(raw []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	params := make(map[string]string, len(fields))
	for key, v := range fields {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			params[key] = val
		case json.Number:
			params[key] = val.String()
		case bool:
			params[key] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("field %q must be a scalar", key)
		}
	}
	return params, nil
}
