// Package spec embeds the OpenAPI description of the photo journal's JSON
// API. The server publishes it at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
