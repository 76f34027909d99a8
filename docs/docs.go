// Package docs registers the swagger document of the builder API for /swagger/.
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
        "/operators": {
            "get": {
                "produces": ["application/json"],
                "tags": ["operators"],
                "summary": "List operators",
                "responses": {
                    "200": {"description": "Operator catalogue", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.OperatorResponse"}}}
                }
            }
        },
        "/operators/{type}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["operators"],
                "summary": "Get operator",
                "parameters": [{"type": "string", "description": "Operator type", "name": "type", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Operator metadata", "schema": {"$ref": "#/definitions/handler.OperatorResponse"}},
                    "404": {"description": "Unknown operator", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Open a builder session",
                "parameters": [{"description": "Initial columns and pipeline", "name": "session", "in": "body", "schema": {"$ref": "#/definitions/handler.CreateSessionRequest"}}],
                "responses": {
                    "201": {"description": "Session snapshot", "schema": {"$ref": "#/definitions/builder.Snapshot"}},
                    "400": {"description": "Invalid request payload", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Session limit reached", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get session snapshot",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Session snapshot", "schema": {"$ref": "#/definitions/builder.Snapshot"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Close a session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Session closed"},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/commands": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Apply a builder command",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Command", "name": "command", "in": "body", "required": true, "schema": {"$ref": "#/definitions/builder.Command"}}
                ],
                "responses": {
                    "200": {"description": "Session snapshot", "schema": {"$ref": "#/definitions/builder.Snapshot"}},
                    "400": {"description": "Rejected command", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/steps/{stepId}/widgets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Render the parameter form of a step",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Step ID", "name": "stepId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Widgets", "schema": {"type": "array", "items": {"$ref": "#/definitions/param.Widget"}}},
                    "404": {"description": "Session or step not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/export": {
            "get": {
                "produces": ["application/json", "application/yaml"],
                "tags": ["sessions"],
                "summary": "Export the session pipeline",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "json or yaml", "name": "format", "in": "query"},
                    {"type": "string", "description": "jq expression run over the document", "name": "query", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Pipeline document", "schema": {"$ref": "#/definitions/model.Document"}},
                    "400": {"description": "Bad format or query", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/validate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Validate the session pipeline",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Validation report", "schema": {"$ref": "#/definitions/handler.ValidationResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/save": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Save the session pipeline under a name",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Pipeline name", "name": "name", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.NameRequest"}}
                ],
                "responses": {
                    "201": {"description": "Saved", "schema": {"$ref": "#/definitions/store.Summary"}},
                    "400": {"description": "Invalid name", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "409": {"description": "Name already exists", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/load": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Replace the session pipeline with a saved one",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Pipeline name", "name": "name", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.NameRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session snapshot", "schema": {"$ref": "#/definitions/builder.Snapshot"}},
                    "404": {"description": "Session or pipeline not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/pipelines": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pipelines"],
                "summary": "List saved pipelines",
                "responses": {
                    "200": {"description": "Saved pipelines", "schema": {"type": "array", "items": {"$ref": "#/definitions/store.Summary"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pipelines"],
                "summary": "Save a pipeline document",
                "parameters": [{"description": "Named pipeline", "name": "pipeline", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SavePipelineRequest"}}],
                "responses": {
                    "201": {"description": "Saved", "schema": {"$ref": "#/definitions/store.Summary"}},
                    "400": {"description": "Invalid request payload", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "409": {"description": "Name already exists", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/pipelines/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pipelines"],
                "summary": "Validate a pipeline document",
                "parameters": [{"description": "Pipeline and known columns", "name": "pipeline", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ValidateRequest"}}],
                "responses": {
                    "200": {"description": "Validation report", "schema": {"$ref": "#/definitions/handler.ValidationResponse"}}
                }
            }
        },
        "/pipelines/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pipelines"],
                "summary": "Get a saved pipeline",
                "parameters": [{"type": "string", "description": "Pipeline name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Pipeline document", "schema": {"$ref": "#/definitions/model.Document"}},
                    "404": {"description": "Pipeline not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["pipelines"],
                "summary": "Delete a saved pipeline",
                "parameters": [{"type": "string", "description": "Pipeline name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Pipeline not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.PipelineStep": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "label": {"type": "string"},
                "params": {"type": "object", "additionalProperties": true}
            }
        },
        "model.Document": {
            "type": "object",
            "properties": {"pipeline": {"type": "array", "items": {"$ref": "#/definitions/model.PipelineStep"}}}
        },
        "builder.Command": {
            "type": "object",
            "properties": {
                "op": {"type": "string", "enum": ["insert", "remove", "move", "reorder", "select", "update", "param", "load", "columns"]},
                "type": {"type": "string"},
                "id": {"type": "string"},
                "direction": {"type": "string", "enum": ["up", "down"]},
                "source": {"type": "integer"},
                "dest": {"type": "integer"},
                "step": {"$ref": "#/definitions/model.PipelineStep"},
                "key": {"type": "string"},
                "event": {"type": "object", "additionalProperties": true},
                "steps": {"type": "array", "items": {"$ref": "#/definitions/model.PipelineStep"}},
                "columns": {"type": "array", "items": {"type": "string"}}
            }
        },
        "builder.Snapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "revision": {"type": "integer"},
                "steps": {"type": "array", "items": {"$ref": "#/definitions/model.PipelineStep"}},
                "selected": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "widgets": {"type": "array", "items": {"$ref": "#/definitions/param.Widget"}}
            }
        },
        "param.Widget": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "uiType": {"type": "string"},
                "control": {"type": "string"},
                "description": {"type": "string"},
                "required": {"type": "boolean"},
                "text": {"type": "string"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.OperatorResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "docHint": {"type": "string"},
                "params": {"type": "array", "items": {"type": "object"}},
                "actionParams": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.CreateSessionRequest": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "pipeline": {"type": "array", "items": {"$ref": "#/definitions/model.PipelineStep"}},
                "name": {"type": "string"}
            }
        },
        "handler.NameRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "handler.SavePipelineRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "pipeline": {"type": "array", "items": {"$ref": "#/definitions/model.PipelineStep"}}
            }
        },
        "handler.ValidateRequest": {
            "type": "object",
            "properties": {
                "pipeline": {"type": "array", "items": {"$ref": "#/definitions/model.PipelineStep"}},
                "columns": {"type": "array", "items": {"type": "string"}}
            }
        },
        "store.Summary": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "steps": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "handler.ValidationResponse": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "issues": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pipeline Builder API",
	Description:      "Compose, validate and persist data pipeline definitions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
