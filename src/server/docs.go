// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package server exposes certificate inspection over HTTP using [Fiber].
//
// Routes:
//
//	POST /validate_certificate  {"domain": "example.com"}
//	GET  /health
//
// A successful inspection answers 200 with the JSON result. Failures to
// obtain the certificate answer 400 with "Error fetching certificate: <msg>",
// failures while evaluating it answer 500 with "Validation error: <msg>",
// and request bodies that do not match the request schema answer 400.
//
// [Fiber]: https://gofiber.io
package server
