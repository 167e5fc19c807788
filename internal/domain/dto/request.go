package dto

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidTickers is returned when the payload carries no usable
// "tickers" list at all.
var ErrInvalidTickers = errors.New(`please provide a JSON object with a "tickers" key containing a list of ticker strings`)

// ErrNoValidTickers is returned when a tickers list exists but every entry
// is empty or not a string.
var ErrNoValidTickers = errors.New("no valid ticker symbols provided")

// ParseTickers extracts the requested ticker symbols from a raw payload.
//
// Three payload shapes are tolerated, for compatibility with the different
// invocation paths (direct HTTP, API-Gateway proxy, test harnesses):
//
//  1. a JSON object with a "tickers" array:        {"tickers": ["AAPL"]}
//  2. a JSON-encoded string containing shape 1:    "{\"tickers\": [\"AAPL\"]}"
//  3. an envelope whose "body" field is either a JSON object or a
//     JSON-encoded string of shape 1:              {"body": "{\"tickers\": ...}"}
//
// The tickers value must be a non-empty array; entries are filtered to
// non-empty strings. An empty list, a non-list value, or a list with no
// valid entries yields a validation error.
func ParseTickers(raw []byte) ([]string, error) {
	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("invalid request format: %w", err)
	}

	// Shape 2: the whole payload is a JSON-encoded string.
	if s, ok := top.(string); ok {
		if err := json.Unmarshal([]byte(s), &top); err != nil {
			return nil, fmt.Errorf("invalid request format: %w", err)
		}
	}

	obj, ok := top.(map[string]any)
	if !ok {
		return nil, ErrInvalidTickers
	}

	// Shape 3: unwrap a "body" envelope. A body of any other type falls
	// through to the envelope itself, matching the permissive original
	// behavior.
	if body, present := obj["body"]; present {
		switch v := body.(type) {
		case string:
			var inner any
			if err := json.Unmarshal([]byte(v), &inner); err != nil {
				return nil, fmt.Errorf("invalid request format: %w", err)
			}
			if m, ok := inner.(map[string]any); ok {
				obj = m
			}
		case map[string]any:
			obj = v
		}
	}

	list, ok := obj["tickers"].([]any)
	if !ok || len(list) == 0 {
		return nil, ErrInvalidTickers
	}

	tickers := make([]string, 0, len(list))
	for _, entry := range list {
		if s, ok := entry.(string); ok && s != "" {
			tickers = append(tickers, s)
		}
	}
	if len(tickers) == 0 {
		return nil, ErrNoValidTickers
	}
	return tickers, nil
}
