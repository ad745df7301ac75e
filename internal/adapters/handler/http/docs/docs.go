// Package docs registers the OpenAPI document of the REST API with swag.
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
		"/healthz": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"health"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "OK"
					},
					"503": {
						"description": "Service Unavailable"
					}
				}
			}
		},
		"/subjects": {
			"get": {
				"description": "Returns every subject, or only those with the given name.",
				"produces": [
					"application/json"
				],
				"tags": [
					"subjects"
				],
				"summary": "Lists subjects",
				"parameters": [
					{
						"type": "string",
						"description": "Subject name",
						"name": "name",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Subject"
							}
						}
					}
				}
			},
			"post": {
				"description": "The subject id is chosen by the client.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"subjects"
				],
				"summary": "Creates a subject",
				"parameters": [
					{
						"description": "Subject",
						"name": "subject",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.Subject"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Subject"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			},
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"subjects"
				],
				"summary": "Replaces a subject",
				"parameters": [
					{
						"description": "Subject",
						"name": "subject",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.Subject"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Subject"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			}
		},
		"/subjects/{subjectId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"subjects"
				],
				"summary": "Gets a subject",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Subject"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			},
			"delete": {
				"description": "Polls of the subject are kept.",
				"tags": [
					"subjects"
				],
				"summary": "Deletes a subject",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			}
		},
		"/subjects/{subjectId}/polls": {
			"get": {
				"description": "Returns an empty list when the subject does not exist.",
				"produces": [
					"application/json"
				],
				"tags": [
					"polls"
				],
				"summary": "Lists the polls of a subject",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Poll name",
						"name": "name",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Poll"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			},
			"post": {
				"description": "The start date defaults to now and the end date to one minute after the start date.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"polls"
				],
				"summary": "Creates a poll",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"description": "Poll",
						"name": "poll",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.createPollRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Poll"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			},
			"put": {
				"description": "Only the fields present in the body are changed.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"polls"
				],
				"summary": "Updates a poll",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"description": "Poll",
						"name": "poll",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.updatePollRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Poll"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			}
		},
		"/subjects/{subjectId}/polls/{pollId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"polls"
				],
				"summary": "Gets a poll with its vote count",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Poll ID",
						"name": "pollId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.pollResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"polls"
				],
				"summary": "Deletes a poll and its votes",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Poll ID",
						"name": "pollId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			}
		},
		"/subjects/{subjectId}/polls/{pollId}/votes": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"votes"
				],
				"summary": "Lists the votes of a poll",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Poll ID",
						"name": "pollId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Vote"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			},
			"post": {
				"description": "A voter votes once per poll, and only before the poll end date.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"votes"
				],
				"summary": "Votes on a poll",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Poll ID",
						"name": "pollId",
						"in": "path",
						"required": true
					},
					{
						"description": "Vote",
						"name": "vote",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.voteRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Vote"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			}
		},
		"/subjects/{subjectId}/polls/{pollId}/votes/{voter}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"votes"
				],
				"summary": "Gets the vote of a voter",
				"parameters": [
					{
						"type": "integer",
						"description": "Subject ID",
						"name": "subjectId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Poll ID",
						"name": "pollId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Voter UUID",
						"name": "voter",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Vote"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/http.errorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"domain.Subject": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"domain.Poll": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"start_date": {
					"type": "string",
					"format": "date-time"
				},
				"end_date": {
					"type": "string",
					"format": "date-time"
				},
				"subject_id": {
					"type": "integer"
				}
			}
		},
		"domain.Vote": {
			"type": "object",
			"properties": {
				"voter": {
					"type": "string"
				},
				"agree": {
					"type": "boolean"
				},
				"vote_date": {
					"type": "string",
					"format": "date-time"
				},
				"subject_id": {
					"type": "integer"
				},
				"poll_id": {
					"type": "integer"
				}
			}
		},
		"domain.VoteCount": {
			"type": "object",
			"properties": {
				"agree": {
					"type": "integer"
				},
				"disagree": {
					"type": "integer"
				}
			}
		},
		"http.createPollRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"start_date": {
					"type": "string",
					"format": "date-time"
				},
				"end_date": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"http.updatePollRequest": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"start_date": {
					"type": "string",
					"format": "date-time"
				},
				"end_date": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"http.pollResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"start_date": {
					"type": "string",
					"format": "date-time"
				},
				"end_date": {
					"type": "string",
					"format": "date-time"
				},
				"subject_id": {
					"type": "integer"
				},
				"state": {
					"type": "string",
					"enum": [
						"pending",
						"open",
						"closed"
					]
				},
				"votes": {
					"$ref": "#/definitions/domain.VoteCount"
				}
			}
		},
		"http.voteRequest": {
			"type": "object",
			"properties": {
				"voter": {
					"type": "string"
				},
				"agree": {
					"type": "boolean"
				}
			}
		},
		"http.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"violations": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Cooperative voting API",
	Description:	  "Subjects, polls and votes of a cooperative assembly.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
