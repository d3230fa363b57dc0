package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API docs:
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r *gin.Engine) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>vendorhub-catalog Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "vendorhub-catalog", "version": "v0.1.0" },
  "components": {
    "parameters": {
      "q": { "name": "q", "in": "query", "description": "filter as extended JSON", "schema": { "type": "string" } },
      "pagination": { "name": "pagination", "in": "query", "description": "{\"page_size\":15,\"page_number\":1}", "schema": { "type": "string" } },
      "select": { "name": "select", "in": "query", "description": "space or comma separated field list", "schema": { "type": "string" } }
    }
  },
  "paths": {
    "/api/reviews": {
      "get": { "summary": "List reviews", "parameters": [{"$ref":"#/components/parameters/q"},{"$ref":"#/components/parameters/pagination"},{"$ref":"#/components/parameters/select"}], "responses": { "200": { "description": "reviews page" }, "400": { "description": "malformed query" } } },
      "post": { "summary": "Create review", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"review":{"type":"object"}}}}}}, "responses": { "200": { "description": "created review" } } }
    },
    "/api/reviews/{id}": {
      "get": { "summary": "Get review by id, shortId or slug", "responses": { "200": { "description": "review" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace review", "responses": { "200": { "description": "updated review" } } },
      "patch": { "summary": "Patch review", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"payload":{"type":"object"}}}}}}, "responses": { "200": { "description": "updated review" } } },
      "delete": { "summary": "Delete review", "responses": { "200": { "description": "Review Deleted" }, "404": { "description": "not found" } } }
    },
    "/api/services": {
      "get": { "summary": "List services", "parameters": [{"$ref":"#/components/parameters/q"},{"$ref":"#/components/parameters/pagination"},{"$ref":"#/components/parameters/select"}], "responses": { "200": { "description": "services page" } } },
      "post": { "summary": "Create service", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"service":{"type":"object"}}}}}}, "responses": { "200": { "description": "created service" } } }
    },
    "/api/services/{id}": {
      "get": { "summary": "Get a visible service", "responses": { "200": { "description": "service" }, "404": { "description": "Page not found" } } },
      "put": { "summary": "Replace service", "responses": { "200": { "description": "updated service" } } },
      "patch": { "summary": "Patch service", "responses": { "200": { "description": "updated service" } } }
    },
    "/api/services/{id}/showcases": {
      "get": { "summary": "List showcases", "responses": { "200": { "description": "showcases" }, "404": { "description": "service or showcases missing" } } },
      "post": { "summary": "Append showcase", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"showcase":{"type":"object"}}}}}}, "responses": { "200": { "description": "updated service" } } }
    },
    "/api/services/{id}/showcases/{showcaseId}": {
      "get": { "summary": "Get one showcase", "responses": { "200": { "description": "showcase" } } },
      "put": { "summary": "Replace showcase", "responses": { "200": { "description": "updated service" } } },
      "patch": { "summary": "Patch showcase", "responses": { "200": { "description": "updated service" } } },
      "delete": { "summary": "Remove showcase", "responses": { "200": { "description": "Showcase Removed" } } }
    },
    "/api/services/{id}/imagesCL": {
      "post": { "summary": "Link images", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"imagesCL":{"oneOf":[{"type":"string"},{"type":"array","items":{"type":"string"}}]}}}}}}, "responses": { "200": { "description": "updated service" } } }
    },
    "/api/services/{id}/imagesCL/{imageId}": {
      "delete": { "summary": "Unlink image", "responses": { "200": { "description": "updated service" } } }
    },
    "/api/services/{id}/showcases/{showcaseId}/imagesCL": {
      "post": { "summary": "Link showcase images", "responses": { "200": { "description": "updated service" } } }
    },
    "/api/services/{id}/showcases/{showcaseId}/imagesCL/{imageId}": {
      "delete": { "summary": "Unlink showcase image", "responses": { "200": { "description": "updated service" } } }
    },
    "/api/customer-stories": {
      "get": { "summary": "List customer stories", "responses": { "200": { "description": "customer stories page" } } },
      "post": { "summary": "Create customer story", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"customerStory":{"type":"object"}}}}}}, "responses": { "200": { "description": "created story" } } }
    },
    "/api/customer-stories/{id}": {
      "get": { "summary": "Get customer story", "responses": { "200": { "description": "story" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace customer story", "responses": { "200": { "description": "updated story" } } },
      "patch": { "summary": "Patch customer story", "responses": { "200": { "description": "updated story" } } }
    },
    "/api/customer-stories/{id}/imagesCL": {
      "get": { "summary": "List story images", "responses": { "200": { "description": "expanded images" } } },
      "post": { "summary": "Link story images", "responses": { "200": { "description": "updated story" } } }
    },
    "/api/customer-stories/{id}/imagesCL/{imageId}": {
      "get": { "summary": "Get one story image", "responses": { "200": { "description": "image" }, "404": { "description": "image not found" } } },
      "delete": { "summary": "Unlink story image", "responses": { "200": { "description": "updated story" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
