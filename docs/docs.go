// Package docs holds the Swagger 2.0 description of the HTTP API, served by
// http-swagger under /swagger/. It is maintained by hand next to the handler
// annotations and must list every route registered in cmd/main.go.
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
        "/delete/post/{p_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Deletes a post. Only its owner may do so.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "p_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StatusResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Post belongs to another user", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Post does not exist", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Invalid post ID", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/insert/post": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a post owned by the authenticated user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [
                    {"description": "Post", "name": "postRequest", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CreatePostResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Invalid format", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/posts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every post, ordered by id",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PostsResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/search/post/{p_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns one post by id",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "p_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PostResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Post does not exist", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Invalid post ID", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/signup": {
            "post": {
                "description": "Creates a new user account. The username is trimmed and lower-cased, the password is hashed before storing. No token is issued.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration request", "name": "signupRequest", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "User successfully registered", "schema": {"$ref": "#/definitions/handlers.SignupResponse"}},
                    "406": {"description": "Invalid data or user already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Malformed request body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/token": {
            "post": {
                "description": "Authenticate user with a form-encoded username and password and return a bearer token",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Bearer token returned", "schema": {"$ref": "#/definitions/handlers.TokenResponse"}},
                    "400": {"description": "Invalid form", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Incorrect username/password", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/update/post/{p_id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Updates a post. Only its owner may do so.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Update post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "p_id", "in": "path", "required": true},
                    {"description": "Post", "name": "postRequest", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StatusResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Post belongs to another user", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Post does not exist", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Invalid post ID or format", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/user/posts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the posts owned by the authenticated user",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List own posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PostDB"}}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "User has no posts", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the authenticated user without the password hash",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserDB"}},
                    "400": {"description": "Inactive user", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Could not validate credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreatePostResponse": {
            "type": "object",
            "properties": {
                "details": {"description": "Owner ID", "type": "string"},
                "post": {"$ref": "#/definitions/models.PostDB"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"description": "Error message", "type": "string", "default": "Internal server error"}
            }
        },
        "handlers.PostRequest": {
            "type": "object",
            "properties": {
                "content": {"description": "Body", "type": "string", "default": "First post"},
                "title": {"description": "Title", "type": "string", "default": "Hello"}
            }
        },
        "handlers.PostResponse": {
            "type": "object",
            "properties": {
                "post": {"$ref": "#/definitions/models.PostDB"}
            }
        },
        "handlers.PostsResponse": {
            "type": "object",
            "properties": {
                "posts": {"type": "array", "items": {"$ref": "#/definitions/models.PostDB"}}
            }
        },
        "handlers.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"description": "Email", "type": "string", "default": "john@example.com"},
                "password": {"description": "Password", "type": "string", "default": "secret123"},
                "username": {"description": "Username, at least 4 characters", "type": "string", "default": "john_doe"}
            }
        },
        "handlers.SignupResponse": {
            "type": "object",
            "properties": {
                "details": {"description": "Success message", "type": "string", "default": "User is created successfully!"}
            }
        },
        "handlers.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"description": "Outcome", "type": "string", "default": "Post Updated Successfully"}
            }
        },
        "handlers.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"description": "JWT token", "type": "string", "default": "JWT_TOKEN"},
                "token_type": {"description": "Always \"bearer\"", "type": "string", "default": "bearer"}
            }
        },
        "models.PostDB": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "models.UserDB": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "disabled": {"type": "boolean"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "updated_at": {"type": "string"},
                "username": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "gw-blog API",
	Description:      "Blog backend with token authentication and per-user post ownership",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
