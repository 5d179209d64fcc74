// Package docs is generated by swag from the handler annotations.
// Regenerate with: swag init -g cmd/web/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a business",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Email already in use"}}
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/memberships": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Memberships"],
                "summary": "Enrol a member in a plan",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Overlapping active membership"}}
            },
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Memberships"],
                "summary": "List memberships",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/payments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Payments"],
                "summary": "Record a payment",
                "responses": {"201": {"description": "Created"}}
            },
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Payments"],
                "summary": "List payments, newest first",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Dashboard"],
                "summary": "Business dashboard",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/jobs/expire-memberships": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Jobs"],
                "summary": "Run the expiry sweep now",
                "responses": {"200": {"description": "OK"}, "409": {"description": "A sweep is already running"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "memberhub API",
	Description:      "Membership, subscription and payment tracking for small businesses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
