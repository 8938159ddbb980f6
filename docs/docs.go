// Package docs holds the generated OpenAPI description served by the
// swagger UI. Regenerate with `swag init -g cmd/content_api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Federated search over pages and discovered content",
                "parameters": [
                    {"type": "string", "name": "query", "in": "query", "description": "search query"},
                    {"type": "integer", "name": "page", "in": "query", "description": "1-based page number", "default": 1},
                    {"type": "integer", "name": "size", "in": "query", "description": "page size", "default": 15, "maximum": 100},
                    {"type": "string", "name": "site", "in": "query", "description": "site UUID to scope page and item results to"}
                ],
                "responses": {
                    "200": {"description": "one merged, ranked result page"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/sync-sources": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Sync discovery sources",
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "description": "optional source selection",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "sourceIds": {"type": "array", "items": {"type": "string"}}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "per-source outcomes with failures listed separately"},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Content Scout API",
	Description:      "Federated content discovery and search over editorial pages and external sources",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
