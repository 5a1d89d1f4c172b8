package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Catalog API",
        "description": "Search, browse and author courses of the e-learning catalog",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Courses", "description": "Published course catalog"},
        {"name": "Operations", "description": "Liveness, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "Search published courses",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string", "description": "Category name, All for any"},
                    {"name": "level", "in": "query", "type": "string", "description": "Level, All for any"},
                    {"name": "language", "in": "query", "type": "string", "description": "Language, All for any"},
                    {"name": "search", "in": "query", "type": "string", "description": "Case-insensitive substring of title or description"},
                    {"name": "limit", "in": "query", "type": "integer", "default": 20},
                    {"name": "offset", "in": "query", "type": "integer", "default": 0}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseListResponse"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CourseCreatedResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a published course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/courses/filters": {
            "get": {
                "tags": ["Courses"],
                "summary": "Filter options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/FilterOptions"}}
                }
            }
        },
        "/api/courses/export": {
            "get": {
                "tags": ["Courses"],
                "summary": "Export a catalog page",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "language", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "CourseDisplay": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "instructor": {"type": "string"},
                "category": {"type": "string", "x-nullable": true},
                "level": {"type": "string"},
                "duration": {"type": "string"},
                "students": {"type": "integer"},
                "rating": {"type": "number"},
                "price": {"type": "integer"},
                "originalPrice": {"type": "integer", "x-nullable": true},
                "thumbnail": {"type": "string", "x-nullable": true},
                "description": {"type": "string", "x-nullable": true},
                "lessons": {"type": "integer"},
                "isPremium": {"type": "boolean"},
                "language": {"type": "string"}
            }
        },
        "CourseListResponse": {
            "type": "object",
            "properties": {
                "courses": {"type": "array", "items": {"$ref": "#/definitions/CourseDisplay"}},
                "success": {"type": "boolean"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "instructor_id": {"type": "integer"},
                "category_id": {"type": "integer"},
                "level": {"type": "string"},
                "language": {"type": "string"},
                "price": {"type": "number"},
                "original_price": {"type": "number"},
                "thumbnail_url": {"type": "string"},
                "duration_hours": {"type": "number"},
                "total_lessons": {"type": "integer"},
                "is_premium": {"type": "boolean"},
                "is_published": {"type": "boolean"}
            },
            "required": ["title", "category_id", "level", "language"]
        },
        "CourseCreatedResponse": {
            "type": "object",
            "properties": {
                "course": {"type": "object"},
                "success": {"type": "boolean"}
            }
        },
        "FilterOptions": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}},
                "levels": {"type": "array", "items": {"type": "string"}},
                "languages": {"type": "array", "items": {"type": "string"}},
                "success": {"type": "boolean"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
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
