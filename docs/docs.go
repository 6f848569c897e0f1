// Package docs holds the OpenAPI description served at /swagger.
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
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/document-presets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List document presets",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.DocumentPreset"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/vendors/{vendorID}/documents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Vendor compliance overview",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Overview"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/vendors/{vendorID}/documents/files/{fileName}": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["documents"],
                "summary": "Stream a document file",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true},
                    {"type": "string", "description": "Stored file name", "name": "fileName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/vendors/{vendorID}/documents/missing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Missing required documents",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.DocumentPreset"}}}
                }
            }
        },
        "/vendors/{vendorID}/documents/replace": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Replace a document",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true},
                    {"type": "file", "description": "PDF, JPEG or PNG, at most 10 MB", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Document type", "name": "documentType", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Whether validFrom and validTo are required", "name": "hasValidityPeriod", "in": "formData"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "validFrom", "in": "formData"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "validTo", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/vendors/{vendorID}/documents/report": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["documents"],
                "summary": "Export compliance report",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true},
                    {"type": "string", "description": "csv, xlsx or pdf", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/vendors/{vendorID}/uploads": {
            "get": {
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "List replace-uploads",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.UploadListResult"}}
                }
            }
        },
        "/vendors/{vendorID}/uploads/{uploadID}/file": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["uploads"],
                "summary": "Download a replace-upload",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true},
                    {"type": "string", "description": "Upload ID", "name": "uploadID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/vendors/{vendorID}/uploads/{uploadID}/preview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Preview link for a replace-upload",
                "parameters": [
                    {"type": "string", "description": "Vendor ID", "name": "vendorID", "in": "path", "required": true},
                    {"type": "string", "description": "Upload ID", "name": "uploadID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
                }
            }
        },
        "model.DocumentPreset": {
            "type": "object",
            "properties": {
                "documentName": {"type": "string"},
                "isRequired": {"type": "boolean"},
                "hasExpiry": {"type": "boolean"},
                "renewalFrequency": {"type": "string"}
            }
        },
        "model.Document": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "documentType": {"type": "string"},
                "fileUrl": {"type": "string"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "integer"},
                "fileType": {"type": "string"},
                "hasValidityPeriod": {"type": "boolean"},
                "validFrom": {"type": "string"},
                "validTo": {"type": "string"},
                "status": {
                    "type": "object",
                    "properties": {
                        "status": {"type": "string", "enum": ["pending", "approved", "needs review"]},
                        "message": {"type": "string"}
                    }
                },
                "uploadedDate": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "model.UploadRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "vendor_id": {"type": "string"},
                "document_type": {"type": "string"},
                "file_name": {"type": "string"},
                "file_url": {"type": "string"},
                "storage_key": {"type": "string"},
                "size": {"type": "integer"},
                "content_type": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "compliance.Classification": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["verified", "pending", "review", "expiring", "expired", "required"]},
                "message": {"type": "string"},
                "days_remaining": {"type": "integer"}
            }
        },
        "compliance.Metrics": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "verified": {"type": "integer"},
                "pending": {"type": "integer"},
                "review": {"type": "integer"},
                "expiring": {"type": "integer"},
                "expired": {"type": "integer"},
                "required": {"type": "integer"}
            }
        },
        "service.Overview": {
            "type": "object",
            "properties": {
                "vendorId": {"type": "string"},
                "companyName": {"type": "string"},
                "documents": {
                    "type": "array",
                    "items": {
                        "allOf": [
                            {"$ref": "#/definitions/model.Document"},
                            {"type": "object", "properties": {"display": {"$ref": "#/definitions/compliance.Classification"}}}
                        ]
                    }
                },
                "missing": {"type": "array", "items": {"$ref": "#/definitions/model.DocumentPreset"}},
                "metrics": {"$ref": "#/definitions/compliance.Metrics"},
                "presetsLoaded": {"type": "boolean"}
            }
        },
        "service.UploadListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.UploadRecord"}},
                "total": {"type": "integer"}
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
	Title:            "Vendor Portal Compliance API",
	Description:      "Compliance-document workflow for procurement vendors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
