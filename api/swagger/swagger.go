package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lesson Ledger API",
        "description": "Lesson scheduling queries and reports",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Lessons",
            "description": "Lesson records and lookups"
        },
        {
            "name": "Reports",
            "description": "Aggregates over lessons"
        },
        {
            "name": "System",
            "description": "Health and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is down"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/lessons": {
            "get": {
                "tags": [
                    "Lessons"
                ],
                "summary": "List all lessons",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Create lesson",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateLessonRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload or date",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Teacher or student not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Lesson already exists",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/my-lessons": {
            "get": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Lessons taught by a teacher",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher ID"
                    },
                    {
                        "name": "email",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher email"
                    },
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Later boundary, defaults to now"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Earlier boundary, defaults to 30 days before startDate"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Missing teacher or invalid date",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Teacher not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/search": {
            "get": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Search lessons",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher ID"
                    },
                    {
                        "name": "teacherEmail",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher email"
                    },
                    {
                        "name": "studentId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student ID"
                    },
                    {
                        "name": "studentFirst",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student first name"
                    },
                    {
                        "name": "studentLast",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student last name"
                    },
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Later boundary (YYYY-MM-DD or RFC3339)"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Earlier boundary (YYYY-MM-DD or RFC3339)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid date",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Teacher or student not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/search-student": {
            "get": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Lessons attended by a student",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Student ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Student not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/summary": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Hours and students per category",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher ID"
                    },
                    {
                        "name": "teacherEmail",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher email"
                    },
                    {
                        "name": "studentId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student ID"
                    },
                    {
                        "name": "studentFirst",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student first name"
                    },
                    {
                        "name": "studentLast",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student last name"
                    },
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Later boundary (YYYY-MM-DD or RFC3339)"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Earlier boundary (YYYY-MM-DD or RFC3339)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/ResponseEnvelope"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ReportResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid date",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Store unavailable, retry",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/summary/export": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Download summary",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher ID"
                    },
                    {
                        "name": "teacherEmail",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Teacher email"
                    },
                    {
                        "name": "studentId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student ID"
                    },
                    {
                        "name": "studentFirst",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student first name"
                    },
                    {
                        "name": "studentLast",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student last name"
                    },
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Later boundary (YYYY-MM-DD or RFC3339)"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Earlier boundary (YYYY-MM-DD or RFC3339)"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/student-last-lesson": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Latest lesson per student (level 2 or lower)",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Window start"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Window end, defaults to now"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Insufficient level",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/lessons/{id}": {
            "get": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Lesson detail",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Lesson not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Update lesson",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateLessonRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Lesson not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Lessons"
                ],
                "summary": "Delete lesson (level 1)",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "403": {
                        "description": "Insufficient level",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Lesson not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "CreateLessonRequest": {
            "type": "object",
            "required": [
                "date",
                "students",
                "teacher"
            ],
            "properties": {
                "date": {
                    "type": "string"
                },
                "lesson_type": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "students": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "teacher": {
                    "type": "string"
                }
            }
        },
        "UpdateLessonRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "lesson_type": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "students": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "teacher": {
                    "type": "string"
                }
            }
        },
        "ReportResult": {
            "type": "object",
            "properties": {
                "total_hours": {
                    "type": "number"
                },
                "total_students": {
                    "type": "integer"
                },
                "hours": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number"
                    }
                },
                "students": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
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
