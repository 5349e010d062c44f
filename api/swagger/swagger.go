package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CrossTrack API",
        "description": "REST backend for the Hornets cross country and track program",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Admin authentication"},
        {"name": "Athletes", "description": "Athlete directory"},
        {"name": "Sports", "description": "Sport catalog"},
        {"name": "Events", "description": "Event catalog per sport"},
        {"name": "Meets", "description": "Meet schedule"},
        {"name": "Results", "description": "Individual meet results"},
        {"name": "Records", "description": "Record book and leaderboards"},
        {"name": "Rosters", "description": "Season rosters"},
        {"name": "TeamResults", "description": "Dual meet outcomes and standings"},
        {"name": "History", "description": "Program history pages"},
        {"name": "Dash", "description": "Dash in the Dark pages and documents"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate an admin user",
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/athletes": {
            "get": {
                "tags": ["Athletes"],
                "summary": "List athletes",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Athletes"],
                "summary": "Create athlete",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/meets/years": {
            "get": {
                "tags": ["Meets"],
                "summary": "School years with meets",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/results/bulk": {
            "post": {
                "tags": ["Results"],
                "summary": "Create a batch of results",
                "responses": {"200": {"description": "Partial-success summary"}}
            }
        },
        "/records/leaderboard/{eventId}": {
            "get": {
                "tags": ["Records"],
                "summary": "Top performances for one event and gender",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Gender missing"}
                }
            }
        },
        "/team-results/standings": {
            "get": {
                "tags": ["TeamResults"],
                "summary": "Season standings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dash/year/{year}/files": {
            "post": {
                "tags": ["Dash"],
                "summary": "Attach a document to a dash page",
                "responses": {"201": {"description": "Created"}}
            }
        }
    },
    "definitions": {
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
