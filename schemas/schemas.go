// Package schemas embeds the OpenAPI document describing the gateway API.
package schemas

import _ "embed"

// OpenAPISpec is the gateway's OpenAPI 3 document.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
