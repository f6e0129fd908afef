package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Advotrack Roster API",
        "description": "Volunteer roster datatable service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Volunteers", "description": "Volunteer datatable, export and filter options"},
        {"name": "System", "description": "Health and instrumentation"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/organizations/{orgId}/volunteers/datatable": {
            "post": {
                "tags": ["Volunteers"],
                "summary": "Query the volunteer datatable",
                "parameters": [
                    {"name": "orgId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DatatableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DatatableResponse"}},
                    "400": {"description": "Invalid request or unsupported sort column", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/organizations/{orgId}/volunteers/export": {
            "post": {
                "tags": ["Volunteers"],
                "summary": "Export the filtered volunteer set",
                "parameters": [
                    {"name": "orgId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/organizations/{orgId}/volunteers/filter-options": {
            "get": {
                "tags": ["Volunteers"],
                "summary": "List volunteer filter options",
                "parameters": [
                    {"name": "orgId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Order": {
            "type": "object",
            "properties": {
                "by": {"type": "string", "enum": ["display_name", "email", "active", "supervisor_name", "has_transition_aged_youth_cases", "most_recent_contact_occurred_at", "contacts_made_in_past_days"]},
                "direction": {"type": "string", "enum": ["asc", "desc"]}
            },
            "required": ["by", "direction"]
        },
        "DatatableRequest": {
            "type": "object",
            "properties": {
                "order": {"$ref": "#/definitions/Order"},
                "page": {"type": "integer", "minimum": 1},
                "per_page": {"type": "integer", "minimum": 1},
                "search_term": {"type": "string", "x-nullable": true},
                "filters": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {"type": "string", "x-nullable": true}
                    }
                }
            },
            "required": ["page", "per_page"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "order": {"$ref": "#/definitions/Order"},
                "search_term": {"type": "string", "x-nullable": true},
                "filters": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {"type": "string", "x-nullable": true}
                    }
                },
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["format"]
        },
        "VolunteerRow": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "display_name": {"type": "string"},
                "email": {"type": "string"},
                "active": {"type": "boolean"},
                "supervisor_name": {"type": "string", "x-nullable": true},
                "case_numbers": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "DatatableResponse": {
            "type": "object",
            "properties": {
                "recordsTotal": {"type": "integer"},
                "recordsFiltered": {"type": "integer"},
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/VolunteerRow"}
                }
            }
        },
        "SupervisorOption": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "display_name": {"type": "string"}
            }
        },
        "FilterOptionsResponse": {
            "type": "object",
            "properties": {
                "supervisors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SupervisorOption"}
                },
                "active": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "transition_aged_youth": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
