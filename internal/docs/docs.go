// Package docs registers the HTTP API description with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/survey/questions": {
            "get": {
                "tags": ["survey"],
                "summary": "List survey questions",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/PublicQuestion"}}}
                }
            }
        },
        "/survey": {
            "post": {
                "tags": ["survey"],
                "summary": "Score and store a survey",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/survey/check": {
            "post": {
                "tags": ["survey"],
                "summary": "Score a survey without storing it",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CheckResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/signup": {
            "post": {
                "tags": ["admin"],
                "summary": "Request an admin account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CredentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["admin"],
                "summary": "Sign in as an approved admin",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/list": {
            "get": {
                "tags": ["admin"],
                "summary": "List admin accounts",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AdminSummary"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/review": {
            "post": {
                "tags": ["admin"],
                "summary": "Approve or reject an admin account",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ReviewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/entries": {
            "get": {
                "tags": ["admin"],
                "summary": "List stored survey entries, newest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/SurveyEntry"}}}
                }
            }
        },
        "/admin/entries/{id}": {
            "get": {
                "tags": ["admin"],
                "summary": "Show one entry with its answers resolved to question text",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EntryDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/questions": {
            "get": {
                "tags": ["admin"],
                "summary": "List questions including option weights",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Question"}}}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "tags": ["admin"],
                "summary": "Count stored entries per result",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SurveyStats"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "message": {"type": "string"}}
        },
        "PublicOption": {
            "type": "object",
            "properties": {"key": {"type": "string"}, "text": {"type": "string"}}
        },
        "PublicQuestion": {
            "type": "object",
            "properties": {
                "qid": {"type": "string"},
                "text": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/PublicOption"}}
            }
        },
        "Option": {
            "type": "object",
            "properties": {"key": {"type": "string"}, "text": {"type": "string"}, "weight": {"type": "integer"}}
        },
        "Question": {
            "type": "object",
            "properties": {
                "qid": {"type": "string"},
                "text": {"type": "string"},
                "position": {"type": "integer"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/Option"}}
            }
        },
        "SubmitRequest": {
            "type": "object",
            "properties": {"answers": {"type": "object", "additionalProperties": {"type": "string"}}}
        },
        "SubmitResponse": {
            "type": "object",
            "properties": {"meter": {"type": "integer"}, "result": {"type": "string", "enum": ["Healthy", "Mild Concerns", "At Risk"]}}
        },
        "CheckResponse": {
            "type": "object",
            "properties": {
                "meter": {"type": "integer"},
                "result": {"type": "string", "enum": ["Healthy", "Mild Concerns", "At Risk"]},
                "feedback": {"type": "string"}
            }
        },
        "SurveyEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "answers": {"type": "object", "additionalProperties": {"type": "string"}},
                "result": {"type": "string"},
                "meter": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "ResolvedAnswer": {
            "type": "object",
            "properties": {
                "qid": {"type": "string"},
                "key": {"type": "string"},
                "question": {"type": "string"},
                "optionText": {"type": "string"},
                "weight": {"type": "integer"},
                "known": {"type": "boolean"}
            }
        },
        "EntryDetail": {
            "allOf": [
                {"$ref": "#/definitions/SurveyEntry"},
                {"type": "object", "properties": {"resolved": {"type": "array", "items": {"$ref": "#/definitions/ResolvedAnswer"}}}}
            ]
        },
        "SurveyStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "byResult": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "CredentialsRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "AdminSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "ReviewRequest": {
            "type": "object",
            "properties": {"adminId": {"type": "string"}, "approve": {"type": "boolean"}}
        },
        "ReviewResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported API info that cmd/server may override
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Mindcheck API",
	Description:      "Wellbeing survey scoring and admin console",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
