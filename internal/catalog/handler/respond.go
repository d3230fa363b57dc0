// Package handler exposes the catalog repositories over gin.
//
// Error bodies always carry a message and an eId tag: BREQ for malformed or
// incomplete requests, NOTF for missing documents and DBE for store failures.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/apperr"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"github.com/vendorhub/vendorhub/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "eId": apperr.CodeBadRequest})
}

func respondError(c *gin.Context, op string, err error) {
	if apperr.Is(err, apperr.KindStore) {
		logger.Errorf("%s: %v", op, err)
	} else {
		logger.Debugf("%s: %v", op, err)
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.PublicMessage(err), "eId": apperr.Code(err)})
}

func notFound(c *gin.Context) {
	respondError(c, c.FullPath(), apperr.NotFound("document not found"))
}

// listParams decodes the q (extended JSON filter), pagination (JSON) and
// select query parameters of a list request.
type listParams struct {
	Filter bson.M
	Page   query.Page
	Select string
}

func parseListParams(c *gin.Context) (listParams, error) {
	var p listParams

	q := c.DefaultQuery("q", "{}")
	if q == "" {
		q = "{}"
	}
	if err := bson.UnmarshalExtJSON([]byte(q), false, &p.Filter); err != nil {
		return p, err
	}

	pagination := c.DefaultQuery("pagination", "{}")
	if pagination == "" {
		pagination = "{}"
	}
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(pagination), &raw); err != nil {
		return p, err
	}
	p.Page = query.ParsePage(raw)
	p.Select = c.Query("select")
	return p, nil
}

// readBody decodes a JSON request body as relaxed extended JSON so that
// integers stay integers and {"$oid": ...} values become ObjectIDs.
func readBody(c *gin.Context) (bson.M, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty body")
	}
	var body bson.M
	if err := bson.UnmarshalExtJSON(raw, false, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// bodyDoc returns the embedded document stored under key in the request body.
func bodyDoc(c *gin.Context, key string) (bson.M, bool) {
	body, err := readBody(c)
	if err != nil {
		return nil, false
	}
	return store.AsDoc(body[key])
}
