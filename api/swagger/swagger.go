package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "iGaming Events API",
        "description": "Public iGaming events calendar: submissions, moderation imports, calendar views and invites.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Events", "description": "Submissions and public read models"},
        {"name": "Moderation", "description": "Bulk import of reviewed events"},
        {"name": "Invites", "description": "Calendar invite emails"},
        {"name": "Ops", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["Ops"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["Ops"], "summary": "Readiness check", "responses": {"200": {"description": "Ready"}, "503": {"description": "A dependency is down"}}}
        },
        "/metrics": {
            "get": {"tags": ["Ops"], "summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "Metrics"}}}
        },
        "/submit-event": {
            "post": {
                "tags": ["Events"],
                "summary": "Submit an event for review",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Event"}}],
                "responses": {
                    "200": {"description": "Created or updated", "schema": {"$ref": "#/definitions/SubmitEventResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Failure"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/bulk-submit-event": {
            "post": {
                "tags": ["Moderation"],
                "summary": "Import reviewed events in bulk",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/BulkSubmitRequest"}}],
                "responses": {
                    "200": {"description": "Processed", "schema": {"$ref": "#/definitions/BulkSubmitResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Failure"}},
                    "401": {"description": "Missing or invalid moderator token", "schema": {"$ref": "#/definitions/Failure"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/reviewed-events": {
            "get": {
                "tags": ["Events"],
                "summary": "List reviewed events",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Events", "schema": {"type": "object", "properties": {"events": {"type": "array", "items": {"$ref": "#/definitions/Event"}}}}},
                    "500": {"description": "Store not configured or failing", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/send-calendar-invite": {
            "post": {
                "tags": ["Invites"],
                "summary": "Email a calendar invite",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SendInviteRequest"}}],
                "responses": {
                    "200": {"description": "Sent", "schema": {"$ref": "#/definitions/SendInviteResponse"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/Failure"}},
                    "500": {"description": "Mail delivery failed", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/events/cards": {
            "get": {
                "tags": ["Events"],
                "summary": "Paginated event cards",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer", "description": "Max 60"}
                ],
                "responses": {"200": {"description": "Cards", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/events/calendar": {
            "get": {
                "tags": ["Events"],
                "summary": "Month calendar layout",
                "parameters": [
                    {"in": "query", "name": "month", "type": "string", "description": "YYYY-MM"},
                    {"in": "query", "name": "expanded", "type": "string", "description": "Comma separated week indexes"}
                ],
                "responses": {
                    "200": {"description": "Layout", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad month or week index", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/detail": {
            "get": {
                "tags": ["Events"],
                "summary": "Event detail",
                "parameters": [{"in": "query", "name": "link", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Detail", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown link", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/export": {
            "get": {
                "tags": ["Events"],
                "summary": "Download reviewed events",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "File"}, "400": {"description": "Unknown format"}}
            }
        },
        "/calendar.ics": {
            "get": {
                "tags": ["Events"],
                "summary": "iCalendar subscription feed",
                "produces": ["text/calendar"],
                "responses": {"200": {"description": "Feed"}}
            }
        }
    },
    "definitions": {
        "Event": {
            "type": "object",
            "required": ["eventName", "link"],
            "properties": {
                "eventName": {"type": "string"},
                "month": {"type": "string"},
                "location": {"type": "string"},
                "link": {"type": "string"},
                "unprocessedDate": {"type": "string"},
                "description": {"type": "string"},
                "website": {"type": "string"},
                "startDate": {"type": "string", "description": "DD-MM-YYYY"},
                "endDate": {"type": "string", "description": "DD-MM-YYYY"}
            }
        },
        "SubmitEventResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "action": {"type": "string", "enum": ["created", "updated"]},
                "eventId": {"type": "string"}
            }
        },
        "BulkSubmitRequest": {
            "type": "object",
            "required": ["events"],
            "properties": {"events": {"type": "array", "items": {"$ref": "#/definitions/Event"}}}
        },
        "BulkSummary": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "updated": {"type": "integer"},
                "created": {"type": "integer"},
                "failed": {"type": "integer"},
                "invalid": {"type": "integer"},
                "skipped": {"type": "integer"}
            }
        },
        "BulkItemResult": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "link": {"type": "string"},
                "action": {"type": "string", "enum": ["created", "updated", "invalid", "skipped"]},
                "eventId": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "BulkSubmitResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "summary": {"$ref": "#/definitions/BulkSummary"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/BulkItemResult"}}
            }
        },
        "SendInviteRequest": {
            "type": "object",
            "required": ["userName", "userEmail", "userIndustry", "eventName", "eventLocation", "startDate", "endDate"],
            "properties": {
                "userName": {"type": "string"},
                "userEmail": {"type": "string", "format": "email"},
                "userIndustry": {"type": "string"},
                "eventName": {"type": "string"},
                "eventDescription": {"type": "string"},
                "eventLocation": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "eventWebsite": {"type": "string"}
            }
        },
        "SendInviteResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "registrationId": {"type": "string", "x-nullable": true}
            }
        },
        "Failure": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
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
