package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "College Portal API",
        "description": "Role-based navigation and access control for the college portal.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Navigation", "description": "Per-device page state and access resolution"},
        {"name": "Visitor", "description": "Visitor onboarding gate"},
        {"name": "Profile", "description": "Profile view with local overlay"},
        {"name": "Notifications", "description": "In-session notices"},
        {"name": "Admin", "description": "Access policy reporting"}
    ],
    "parameters": {
        "DeviceID": {"name": "X-Device-ID", "in": "header", "type": "string", "description": "Stable device identifier; issued as a cookie when absent"}
    },
    "paths": {
        "/navigation": {
            "get": {
                "tags": ["Navigation"],
                "summary": "Current navigation state",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/DeviceID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/NavigationEnvelope"}},
                    "500": {"description": "State store failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Navigation"],
                "summary": "Request a page change",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/DeviceID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NavigateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/NavigationEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/navigation/allowed": {
            "get": {
                "tags": ["Navigation"],
                "summary": "Pages reachable by the signed-in principal",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Not signed in", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/session/logout": {
            "post": {
                "tags": ["Navigation"],
                "summary": "Clear the device's current page",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/DeviceID"}],
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/visitor/contact": {
            "get": {
                "tags": ["Visitor"],
                "summary": "Stored visitor contact for the device",
                "parameters": [{"$ref": "#/parameters/DeviceID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Visitor"],
                "summary": "Submit visitor contact details",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/DeviceID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VisitorContactRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/NavigationEnvelope"}},
                    "400": {"description": "Name and phone are required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not a visitor", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Profile view for the signed-in principal",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/DeviceID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Not signed in", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Notifications"],
                "summary": "Push a notification",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PushNotificationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/read": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark all notifications read",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/access-policy": {
            "get": {
                "tags": ["Admin"],
                "summary": "Access matrix for every role, sub-role and page",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "enum": ["student", "teacher", "hod", "admin", "non-teaching", "driver", "visitor"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["json", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Admins only", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "NavigateRequest": {
            "type": "object",
            "required": ["page"],
            "properties": {
                "page": {"type": "string"}
            }
        },
        "VisitorContactRequest": {
            "type": "object",
            "required": ["name", "phone"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "purpose": {"type": "string"}
            }
        },
        "PushNotificationRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string"}
            }
        },
        "PageAction": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "page": {"type": "string"}
            }
        },
        "PageRender": {
            "type": "object",
            "properties": {
                "page": {"type": "string"},
                "component": {"type": "string"},
                "outcome": {"type": "string", "enum": ["rendered", "fallback", "inline_denial", "access_restricted", "login"]},
                "message": {"type": "string"},
                "action": {"$ref": "#/definitions/PageAction"}
            }
        },
        "NavigationTransition": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "NavigationState": {
            "type": "object",
            "properties": {
                "deviceId": {"type": "string"},
                "currentPage": {"type": "string"},
                "render": {"$ref": "#/definitions/PageRender"},
                "transitions": {"type": "array", "items": {"$ref": "#/definitions/NavigationTransition"}},
                "allowedPages": {"type": "array", "items": {"type": "string"}},
                "needsVisitorInfo": {"type": "boolean"},
                "unreadNotifications": {"type": "integer"}
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
        "NavigationEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/NavigationState"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
