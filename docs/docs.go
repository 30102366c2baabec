// Package docs holds the OpenAPI description served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/instrutores": {
            "get": {
                "tags": ["instrutores"],
                "summary": "Every user of type instructor",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/instrutores/{id}/quantidade-cursos": {
            "get": {
                "tags": ["instrutores"],
                "summary": "Number of courses owned by an instructor",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseCountResponse"}}
                }
            }
        },
        "/cursos": {
            "post": {
                "tags": ["cursos"],
                "summary": "Create a course owned by an instructor",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "course", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CourseCreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/cursos/com-muitos-comentarios": {
            "get": {
                "tags": ["cursos"],
                "summary": "Courses with more than min comments",
                "produces": ["application/json"],
                "parameters": [{"type": "number", "name": "min", "in": "query", "description": "Threshold (default 3)"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Course"}}}
                }
            }
        },
        "/cursos/ordenados-por-nota": {
            "get": {
                "tags": ["cursos"],
                "summary": "Every course with its mean rating, highest first",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RankedCourse"}}}
                }
            }
        },
        "/cursos/sem-comentarios": {
            "delete": {
                "tags": ["cursos"],
                "summary": "Remove every course without comments",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CoursesRemovedResponse"}}
                }
            }
        },
        "/cursos/{id}/media-progresso": {
            "get": {
                "tags": ["cursos"],
                "summary": "Mean progress of the users enrolled in a course",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AverageProgressResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/cursos/{id}/media-nota": {
            "get": {
                "tags": ["cursos"],
                "summary": "Mean rating of a course",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AverageRatingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/cursos/{id}/duracao-total": {
            "get": {
                "tags": ["cursos"],
                "summary": "Sum of the lesson durations of a course",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TotalDurationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/cursos/{id}/alunos-progresso-alto": {
            "get": {
                "tags": ["cursos"],
                "summary": "Users whose progress on a course is above a threshold",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "number", "name": "min", "in": "query", "description": "Threshold (default 90)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/cursos/{id}/comentarios": {
            "post": {
                "tags": ["cursos"],
                "summary": "Comment on a course",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CommentCreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/usuarios/com-progresso-acima": {
            "get": {
                "tags": ["usuarios"],
                "summary": "Users with progress above a threshold on any course",
                "produces": ["application/json"],
                "parameters": [{"type": "number", "name": "min", "in": "query", "description": "Threshold (default 90)"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/usuarios/agrupados-por-tipo": {
            "get": {
                "tags": ["usuarios"],
                "summary": "Number of users per type",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}}
                }
            }
        },
        "/usuarios/com-multiplos-certificados": {
            "get": {
                "tags": ["usuarios"],
                "summary": "Users holding more than one certificate",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            }
        },
        "/usuarios/{id}/cursos": {
            "get": {
                "tags": ["usuarios"],
                "summary": "Courses a user is enrolled in",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Course"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/usuarios/{id}/comentarios": {
            "get": {
                "tags": ["usuarios"],
                "summary": "Comments written by a user",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Comment"}}}
                }
            }
        },
        "/usuarios/{id}/status-cursos": {
            "get": {
                "tags": ["usuarios"],
                "summary": "Status of every course a user has progress on",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string", "enum": ["complete", "in progress", "not started"]}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/usuarios/{id}/progresso/{cursoId}": {
            "patch": {
                "tags": ["usuarios"],
                "summary": "Advance a user's progress on a course by 10 points",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "cursoId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProgressResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/certificados": {
            "post": {
                "tags": ["certificados"],
                "summary": "Issue certificates for every course with progress of 90 or more",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CertificatesIssuedResponse"}}
                }
            }
        },
        "/certificados/por-curso": {
            "get": {
                "tags": ["certificados"],
                "summary": "Number of certificates per course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}}
                }
            }
        }
    },
    "definitions": {
        "Lesson": {
            "type": "object",
            "properties": {"duracao": {"type": "number"}}
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tipo": {"type": "string", "enum": ["aluno", "instrutor"]},
                "cursosMatriculados": {"type": "array", "items": {"type": "string"}},
                "progressoCursos": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "Course": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nome": {"type": "string"},
                "instrutorId": {"type": "string"},
                "aulas": {"type": "array", "items": {"$ref": "#/definitions/Lesson"}}
            }
        },
        "RankedCourse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nome": {"type": "string"},
                "instrutorId": {"type": "string"},
                "aulas": {"type": "array", "items": {"$ref": "#/definitions/Lesson"}},
                "mediaNota": {"type": "number"}
            }
        },
        "Comment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cursoId": {"type": "string"},
                "usuarioId": {"type": "string"},
                "texto": {"type": "string"},
                "nota": {"type": "number", "x-nullable": true}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["nome", "instrutorId", "aulas"],
            "properties": {
                "nome": {"type": "string"},
                "instrutorId": {"type": "string"},
                "aulas": {"type": "array", "items": {"$ref": "#/definitions/Lesson"}}
            }
        },
        "AddCommentRequest": {
            "type": "object",
            "required": ["usuarioId", "texto"],
            "properties": {
                "usuarioId": {"type": "string"},
                "texto": {"type": "string"},
                "nota": {"type": "number", "x-nullable": true}
            }
        },
        "MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "ProgressResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "progresso": {"type": "number"}}
        },
        "CourseCreatedResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "curso": {"$ref": "#/definitions/Course"}}
        },
        "CommentCreatedResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "comentario": {"$ref": "#/definitions/Comment"}}
        },
        "CertificatesIssuedResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "certificadosCriados": {"type": "integer"}}
        },
        "CoursesRemovedResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "cursosRemovidos": {"type": "integer"}}
        },
        "AverageProgressResponse": {
            "type": "object",
            "properties": {"cursoId": {"type": "string"}, "mediaProgresso": {"type": "number"}}
        },
        "AverageRatingResponse": {
            "type": "object",
            "properties": {"cursoId": {"type": "string"}, "mediaNota": {"type": "number"}}
        },
        "TotalDurationResponse": {
            "type": "object",
            "properties": {"cursoId": {"type": "string"}, "duracaoTotal": {"type": "number"}}
        },
        "CourseCountResponse": {
            "type": "object",
            "properties": {"instrutorId": {"type": "string"}, "quantidadeCursos": {"type": "integer"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3333",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "EduTrack API",
	Description:      "Reports and updates over the EduTrack learning dataset",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
