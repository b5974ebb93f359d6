// Package filter applies JMESPath expressions to JSON documents.
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply applies filter and query expressions to a JSON body.
// Filter narrows results (e.g. cars[?price > `20000`]);
// query transforms or selects fields (e.g. [].make).
func Apply(body string, filter string, query string) (string, error) {
	if filter == "" && query == "" {
		return body, nil
	}

	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	if filter != "" {
		filtered, err := search(data, filter)
		if err != nil {
			return "", fmt.Errorf("failed to apply filter: %w", err)
		}
		data = filtered
	}

	if query != "" {
		queried, err := search(data, query)
		if err != nil {
			return "", fmt.Errorf("failed to apply query: %w", err)
		}
		data = queried
	}

	if data == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

// ApplyValue marshals v to JSON and runs query against it
func ApplyValue(v interface{}, query string) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}
	return Apply(string(body), "", query)
}

func search(data interface{}, expression string) (interface{}, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}
