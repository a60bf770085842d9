// Package docs holds the Swagger document served at /swagger/*. It is
// maintained by hand alongside the handler annotations.
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
        "/fetch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["screens"],
                "summary": "Run a fetch hook",
                "parameters": [
                    {
                        "description": "Hook and optional id",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.fetchRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.stateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/forms/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Show a form draft",
                "parameters": [
                    {"type": "string", "description": "Form name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.draftResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/forms/{name}/fields/{field}": {
            "put": {
                "description": "Sets one field of the draft. A multipart request with a file part attaches that file instead.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Set one form field",
                "parameters": [
                    {"type": "string", "description": "Form name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Field name", "name": "field", "in": "path", "required": true},
                    {"description": "Field value", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handler.fieldRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.validateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/forms/{name}/files/{field}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Detach a file from a form draft",
                "parameters": [
                    {"type": "string", "description": "Form name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Field name", "name": "field", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.validateResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/forms/{name}/submit": {
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Submit a form",
                "parameters": [
                    {"type": "string", "description": "Form name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.submitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/forms/{name}/validate": {
            "post": {
                "description": "Replaces the draft's values and returns the field errors. Nothing is sent to the portal service.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Validate form values",
                "parameters": [
                    {"type": "string", "description": "Form name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.validateResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Recent toasts",
                "parameters": [
                    {"type": "integer", "description": "Only notices with a greater sequence number", "name": "after", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.notificationsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/screens/{path}": {
            "get": {
                "description": "Runs the route guard, moves to the screen and starts its fetch hooks. With wait=true the hooks finish before the response.",
                "produces": ["application/json"],
                "tags": ["screens"],
                "summary": "Mount a screen",
                "parameters": [
                    {"type": "string", "description": "Screen path, e.g. admin/jobs", "name": "path", "in": "path", "required": true},
                    {"type": "boolean", "description": "Run fetch hooks before responding", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.screenResponse"}},
                    "303": {"description": "See Other", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/search": {
            "post": {
                "description": "Records the query for the job list and opens the browse screen.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Search jobs",
                "parameters": [
                    {
                        "description": "Search query",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.searchRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.locationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/session/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.locationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["screens"],
                "summary": "Current client state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.stateResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.draftResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "files": {"type": "array", "items": {"type": "string"}},
                "inFlight": {"type": "boolean"},
                "valid": {"type": "boolean"},
                "values": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handler.fieldRequest": {
            "type": "object",
            "properties": {
                "value": {"type": "string", "maxLength": 5000}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handler.fetchRequest": {
            "type": "object",
            "required": ["hook"],
            "properties": {
                "hook": {"type": "string", "enum": ["jobs", "job", "companies", "company", "adminJobs", "appliedJobs", "applicants"]},
                "id": {"type": "string"}
            }
        },
        "handler.locationResponse": {
            "type": "object",
            "properties": {"location": {"type": "string"}}
        },
        "handler.notificationsResponse": {
            "type": "object",
            "properties": {"notices": {"type": "array", "items": {"type": "object"}}}
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"type": "object"}},
                "status": {"type": "string"}
            }
        },
        "handler.screenResponse": {
            "type": "object",
            "properties": {
                "entities": {"type": "object"},
                "hooks": {"type": "array", "items": {"type": "object"}},
                "location": {"type": "string"},
                "session": {"type": "object"}
            }
        },
        "handler.searchRequest": {
            "type": "object",
            "properties": {"query": {"type": "string", "maxLength": 200}}
        },
        "handler.stateResponse": {
            "type": "object",
            "properties": {
                "entities": {"type": "object"},
                "location": {"type": "string"},
                "session": {"type": "object"}
            }
        },
        "handler.submitResponse": {
            "type": "object",
            "properties": {
                "form": {"type": "string"},
                "location": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.validateResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "valid": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Job Portal Shell API",
	Description:      "Local shell over the job portal client core: screens, forms and session.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
