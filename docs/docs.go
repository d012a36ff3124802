// Package docs registers the OpenAPI description served at /swagger.
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
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "User registered", "schema": {"$ref": "#/definitions/handler.SignupResponse"}},
                    "400": {"description": "Passwords do not match or user already exists", "schema": {"$ref": "#/definitions/handler.MessageBody"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handler.MessageBody"}}
                }
            }
        },
        "/{userId}/add-claim": {
            "post": {
                "tags": ["claims"],
                "summary": "Submit an invoice image as a claim",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.AddClaimRequest"}}
                ],
                "responses": {
                    "201": {"description": "Claim recorded", "schema": {"$ref": "#/definitions/handler.AddClaimResponse"}},
                    "400": {"description": "Missing or invalid image URL", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "409": {"description": "Duplicate claim number", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "422": {"description": "Claim number missing or fields unparseable", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "429": {"description": "Extraction rate limited", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "502": {"description": "Fetch or extraction failed", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/{userId}/claims": {
            "get": {
                "tags": ["claims"],
                "summary": "List a user's claims",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Claims", "schema": {"$ref": "#/definitions/handler.ClaimListResponse"}},
                    "400": {"description": "Unknown status", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/{userId}/claims/export": {
            "get": {
                "tags": ["claims"],
                "summary": "Export a user's claims",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "default": "csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Claims export", "schema": {"type": "file"}},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/{userId}/claims/{claimNumber}": {
            "get": {
                "tags": ["claims"],
                "summary": "Get one claim",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "claimNumber", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Claim", "schema": {"$ref": "#/definitions/handler.ClaimResponse"}},
                    "404": {"description": "User or claim not found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["claims"],
                "summary": "Delete one claim",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "claimNumber", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Claim deleted", "schema": {"$ref": "#/definitions/handler.MessageBody"}},
                    "404": {"description": "User or claim not found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/{userId}/stats": {
            "get": {
                "tags": ["stats"],
                "summary": "Get claim statistics",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Aggregate statistics", "schema": {"$ref": "#/definitions/handler.StatsResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/{userId}/profile": {
            "get": {
                "tags": ["users"],
                "summary": "Get a user's profile",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "User profile", "schema": {"$ref": "#/definitions/handler.ProfileResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/{userId}/documents": {
            "post": {
                "tags": ["documents"],
                "summary": "Upload an invoice image",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "File stored", "schema": {"$ref": "#/definitions/handler.DocumentResponse"}},
                    "400": {"description": "Missing file or unsupported type", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.MessageBody": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        },
        "handler.SignupRequest": {
            "type": "object",
            "required": ["fullName", "email", "password", "confirmPassword"],
            "properties": {
                "fullName": {"type": "string", "example": "Jane Roe"},
                "email": {"type": "string", "example": "jane@example.com"},
                "password": {"type": "string"},
                "confirmPassword": {"type": "string"}
            }
        },
        "handler.SignupResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "userId": {"type": "string"}}
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "userId": {"type": "string"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "handler.AddClaimRequest": {
            "type": "object",
            "required": ["image"],
            "properties": {"image": {"type": "string"}}
        },
        "handler.AddClaimResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "claim": {"$ref": "#/definitions/domain.Claim"}}
        },
        "handler.ClaimListResponse": {
            "type": "object",
            "properties": {
                "claims": {"type": "array", "items": {"$ref": "#/definitions/domain.Claim"}},
                "total": {"type": "integer"}
            }
        },
        "handler.ClaimResponse": {
            "type": "object",
            "properties": {"claim": {"$ref": "#/definitions/domain.Claim"}}
        },
        "handler.ProfileResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.User"}}
        },
        "handler.StatsResponse": {
            "type": "object",
            "properties": {"stats": {"$ref": "#/definitions/domain.ClaimStats"}}
        },
        "handler.DocumentResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "key": {"type": "string"},
                "contentType": {"type": "string"},
                "size": {"type": "integer"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Claim": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "claimNumber": {"type": "string"},
                "status": {"type": "string"},
                "holderDetails": {"type": "array", "items": {"$ref": "#/definitions/domain.HolderDetail"}},
                "sourceImageUrl": {"type": "string"},
                "parserModel": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "domain.HolderDetail": {
            "type": "object",
            "properties": {
                "patientName": {"type": "string"},
                "dateOfClaim": {"type": "string"},
                "providerName": {"type": "string"},
                "serviceDate": {"type": "string"},
                "totalAmount": {"type": "string"},
                "claimStatus": {"type": "string"},
                "insuranceProvider": {"type": "string"},
                "address": {"type": "string"},
                "normalized": {"$ref": "#/definitions/domain.NormalizedDetail"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.NormalizedDetail": {
            "type": "object",
            "properties": {
                "totalAmountMinor": {"type": "integer"},
                "currency": {"type": "string"},
                "dateOfClaim": {"type": "string"},
                "serviceDate": {"type": "string"},
                "claimStatus": {"type": "string"}
            }
        },
        "domain.ClaimStats": {
            "type": "object",
            "properties": {
                "totalClaims": {"type": "integer"},
                "byStatus": {"type": "object", "additionalProperties": {"type": "integer"}},
                "totalsByCurrency": {"type": "object", "additionalProperties": {"type": "integer"}},
                "unpricedClaims": {"type": "integer"},
                "latestClaimAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SmartClaim API",
	Description:      "Medical claim intake: invoice images in, structured claims out.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
