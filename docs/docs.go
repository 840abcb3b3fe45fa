// Package docs : описание API для swagger UI (/swagger/index.html). Обновляется командой swag init
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
        "/api/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Аутентификация пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/requestresponse.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Успешная аутентификация", "schema": {"$ref": "#/definitions/requestresponse.SessionResponse"}},
                    "401": {"description": "Неверный email или пароль", "schema": {"$ref": "#/definitions/requestresponse.SessionResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/requestresponse.ErrorResponse"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Регистрация пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/requestresponse.RegisterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/requestresponse.SessionResponse"}},
                    "400": {"description": "Ошибки валидации", "schema": {"$ref": "#/definitions/requestresponse.SessionResponse"}}
                }
            }
        },
        "/api/token/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Обновление токенов",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/requestresponse.RefreshTokenRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/requestresponse.SessionResponse"}},
                    "400": {"description": "invalid request", "schema": {"$ref": "#/definitions/requestresponse.SessionResponse"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Authentication"],
                "summary": "Текущий пользователь",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/requestresponse.CurrentUserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/requestresponse.ErrorResponse"}}
                }
            }
        },
        "/api/auth/forgot-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Запрос на сброс пароля",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/requestresponse.ForgotPasswordRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/reset-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Сброс пароля по токену из письма",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/requestresponse.ResetPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/requestresponse.ErrorResponse"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Получение списка пользователей",
                "parameters": [
                    {"type": "string", "name": "cursor", "in": "query"},
                    {"type": "integer", "default": 50, "maximum": 100, "minimum": 1, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/users/{uuid}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Получение информации о пользователе",
                "parameters": [{"type": "string", "name": "uuid", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Обновление данных пользователя",
                "parameters": [{"type": "string", "name": "uuid", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Удаление пользователя",
                "parameters": [{"type": "string", "name": "uuid", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/users/{uuid}/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Обновление пароля пользователя",
                "parameters": [{"type": "string", "name": "uuid", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/roles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Список ролей",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Список категорий с количеством продуктов", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Создание категории", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/categories/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Категория по id", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Изменение категории", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Удаление категории", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/products": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Список продуктов с категорией и количеством открытых единиц", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Создание продукта", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/products/by-categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Продукты нескольких категорий", "parameters": [{"type": "string", "name": "ids", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/products/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Продукт по id", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Изменение продукта", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Удаление продукта", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/stocks": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Открытые единицы со сроком годности, обратным отсчетом и историей", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Открытие единиц по списку продуктов", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/stocks/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Единица по id", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Смена статуса единицы", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/historicals": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Inventory"], "summary": "Журнал изменений единиц", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        }
    },
    "definitions": {
        "model.SessionResult": {
            "type": "object",
            "properties": {
                "isSucceed": {"type": "boolean"},
                "accessToken": {"type": "string"},
                "refreshToken": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "requestresponse.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "password": {"type": "string", "example": "P@ssw0rd123"}
            }
        },
        "requestresponse.RegisterRequest": {
            "type": "object",
            "properties": {
                "userName": {"type": "string", "example": "alice"},
                "email": {"type": "string", "example": "alice@example.com"},
                "firstName": {"type": "string", "example": "Alice"},
                "lastName": {"type": "string", "example": "Liddell"},
                "password": {"type": "string", "example": "P@ssw0rd123"}
            }
        },
        "requestresponse.RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "refreshToken": {"type": "string"}
            }
        },
        "requestresponse.ForgotPasswordRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}}
        },
        "requestresponse.ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "token": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "requestresponse.SessionResponse": {
            "type": "object",
            "properties": {"response": {"$ref": "#/definitions/model.SessionResult"}}
        },
        "requestresponse.CurrentUserResponse": {
            "type": "object",
            "properties": {
                "response": {
                    "type": "object",
                    "properties": {
                        "uuid": {"type": "string"},
                        "userName": {"type": "string"},
                        "email": {"type": "string"},
                        "roles": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "requestresponse.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "integer", "example": 400},
                        "text": {"type": "string", "example": "invalid request body"}
                    }
                }
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

// SwaggerInfo : метаданные API, подставляются в docTemplate
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Food-inventory",
	Description:      "REST API учета продуктов: аутентификация, пользователи, категории, продукты и остатки",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
