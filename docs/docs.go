// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/signup": {"post": {"tags": ["auth"], "summary": "Register a user", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in and open a session", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/logout": {"delete": {"tags": ["auth"], "summary": "Close the current session", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/users": {"get": {"tags": ["users"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/users/{id}": {"put": {"tags": ["users"], "summary": "Update own profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Email already registered"}}}},
        "/properties": {
            "get": {"tags": ["properties"], "summary": "List or search properties", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["properties"], "summary": "Create a property", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/properties/{id}": {
            "get": {"tags": ["properties"], "summary": "Get a property", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["properties"], "summary": "Replace a property", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["properties"], "summary": "Delete a property", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/properties/{id}/bookings": {
            "get": {"tags": ["bookings"], "summary": "List bookings", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["bookings"], "summary": "Add a non-overlapping booking", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Overlaps an existing booking"}}}
        },
        "/properties/{id}/bookings/{bookingId}": {"delete": {"tags": ["bookings"], "summary": "Delete a booking", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}},
        "/properties/{id}/booked-dates": {"get": {"tags": ["bookings"], "summary": "Every booked day", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}/calendar": {"get": {"tags": ["bookings"], "summary": "Month view, ?month=YYYY-MM", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}/tickets": {"get": {"tags": ["tickets"], "summary": "Tickets of a property", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}/tenant-link": {"get": {"tags": ["tenant"], "summary": "Public ticket form URL", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}/qrcode": {"get": {"tags": ["tenant"], "summary": "QR code PNG of the tenant link", "produces": ["image/png"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/tickets": {
            "get": {"tags": ["tickets"], "summary": "Filter tickets by q, status, propertyId, source", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tickets"], "summary": "Create a ticket", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/tickets/{id}": {
            "get": {"tags": ["tickets"], "summary": "Get a ticket", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["tickets"], "summary": "Update ticket fields", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["tickets"], "summary": "Delete a ticket", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/dashboard": {"get": {"tags": ["dashboard"], "summary": "Vacancy and ticket statistics", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/img/upload": {"post": {"tags": ["media"], "summary": "Upload an image", "consumes": ["multipart/form-data"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "503": {"description": "Upload not configured"}}}},
        "/tenant/properties/{id}": {"get": {"tags": ["tenant"], "summary": "Public property summary", "responses": {"200": {"description": "OK"}}}},
        "/tenant/properties/{id}/tickets": {"post": {"tags": ["tenant"], "summary": "Submit a tenant ticket", "responses": {"201": {"description": "Created"}, "404": {"description": "Property not found"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Rento API",
	Description:      "Rental property management: properties, bookings, maintenance tickets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
