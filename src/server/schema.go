// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// requestSchema describes the body of POST /validate_certificate.
const requestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "domain": {"type": "string", "minLength": 1}
  },
  "required": ["domain"]
}`

// ErrInvalidRequest is returned when a request body does not match the request schema.
var ErrInvalidRequest = errors.New("invalid request")

func compileRequestSchema() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestSchema))
	if err != nil {
		return nil, fmt.Errorf("server: failed to compile request schema: %w", err)
	}
	return schema, nil
}

// checkRequest validates body against schema and joins every violation
// into a single error.
func checkRequest(schema *gojsonschema.Schema, body []byte) error {
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidRequest)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}
