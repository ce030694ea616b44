// Package docs registers the OpenAPI document served at /swagger. Keep it in
// step with the handler annotations when routes change.
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
        "/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Login user", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Profile"], "summary": "Get User Profile", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/change-password": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Profile"], "summary": "Change Password", "responses": {"200": {"description": "OK"}}}
        },
        "/teams": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "List teams visible to the caller", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Create a team", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/teams/{team_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Get a team", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Update a team", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Delete a team", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/teams/{team_id}/trainers": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Assign a trainer", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/teams/{team_id}/members": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "List team members", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Add a member", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/teams/{team_id}/members/{user_id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Remove a member", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}, {"type": "integer", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/teams/{team_id}/events": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "List team events", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}, {"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}, {"type": "boolean", "name": "upcoming", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "Create a single or recurring event", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "No valid dates generated"}}}
        },
        "/teams/{team_id}/series/{series_id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "Delete an event series", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}, {"type": "string", "name": "series_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/teams/{team_id}/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "Attendance statistics per member", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/teams/{team_id}/invites": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Invites"], "summary": "List a team's invites", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Invites"], "summary": "Create a team invite", "parameters": [{"type": "integer", "name": "team_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/events/{event_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "Get an event", "parameters": [{"type": "integer", "name": "event_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "Update an event", "parameters": [{"type": "integer", "name": "event_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Events"], "summary": "Delete an event", "parameters": [{"type": "integer", "name": "event_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/events/{event_id}/responses": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Responses"], "summary": "List responses", "parameters": [{"type": "integer", "name": "event_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Responses"], "summary": "Respond to an event", "parameters": [{"type": "integer", "name": "event_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/events/{event_id}/responses/{user_id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Responses"], "summary": "Respond for a team member", "parameters": [{"type": "integer", "name": "event_id", "in": "path", "required": true}, {"type": "integer", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/invites/{token}": {
            "get": {"tags": ["Invites"], "summary": "Look up an invite", "parameters": [{"type": "string", "name": "token", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/invites/{token}/accept": {
            "post": {"tags": ["Invites"], "summary": "Accept an invite", "parameters": [{"type": "string", "name": "token", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "410": {"description": "Expired or exhausted"}}}
        },
        "/invites/{invite_id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Invites"], "summary": "Delete a team invite", "parameters": [{"type": "integer", "name": "invite_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/trainer-invites": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Invites"], "summary": "Create a trainer invite", "responses": {"201": {"description": "Created"}}}
        },
        "/trainer-invites/{invite_id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Invites"], "summary": "Delete a trainer invite", "parameters": [{"type": "integer", "name": "invite_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
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
	Version:          "1.0",
	Host:             "localhost:8088",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SquadUp REST API",
	Description:      "Team management backend: events, RSVPs and invites.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
