package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/catalog/repository"
	"go.mongodb.org/mongo-driver/bson"
)

// resource holds the handlers shared by every catalog resource. single is
// the request body key for create and replace, plural the list response key.
type resource struct {
	repo   *repository.Repository
	single string
	plural string
}

func (h resource) list(c *gin.Context) {
	p, err := parseListParams(c)
	if err != nil {
		badRequest(c)
		return
	}
	env, err := h.repo.FindMany(c.Request.Context(), p.Filter, repository.FindManyOptions{Select: p.Select, Page: p.Page})
	if err != nil {
		respondError(c, "list "+h.plural, err)
		return
	}
	items := env.Items
	if items == nil {
		items = []bson.M{}
	}
	c.JSON(http.StatusOK, gin.H{h.plural: items, "pagination": env.Pagination, "message": "done"})
}

func (h resource) get(c *gin.Context) {
	doc, err := h.repo.FindOne(c.Request.Context(), c.Param("id"), repository.FindOneOptions{Select: c.Query("select")})
	if err != nil {
		respondError(c, "get "+h.single, err)
		return
	}
	if doc == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h resource) create(c *gin.Context) {
	doc, ok := bodyDoc(c, h.single)
	if !ok {
		badRequest(c)
		return
	}
	out, err := h.repo.Create(c.Request.Context(), doc)
	if err != nil {
		respondError(c, "create "+h.single, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// replace takes the document identity from the path when the body omits it.
func (h resource) replace(c *gin.Context) (bson.M, bool) {
	doc, ok := bodyDoc(c, h.single)
	if !ok {
		badRequest(c)
		return nil, false
	}
	if _, has := doc["_id"]; !has {
		doc["_id"] = c.Param("id")
	}
	out, err := h.repo.Replace(c.Request.Context(), doc)
	if err != nil {
		respondError(c, "replace "+h.single, err)
		return nil, false
	}
	return out, true
}

func (h resource) patch(c *gin.Context) {
	props, ok := bodyDoc(c, "payload")
	if !ok {
		badRequest(c)
		return
	}
	out, err := h.repo.Patch(c.Request.Context(), c.Param("id"), props)
	if err != nil {
		respondError(c, "patch "+h.single, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// imagesBody is the request body of the image link routes.
type imagesBody struct {
	ImagesCL repository.ImageIDs `json:"imagesCL"`
}

func (h resource) addImages(c *gin.Context) {
	var body imagesBody
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ImagesCL) == 0 {
		badRequest(c)
		return
	}
	out, err := h.repo.AddImageLinks(c.Request.Context(), c.Param("id"), body.ImagesCL,
		repository.ImageLinkOptions{ShowcaseID: c.Param("showcaseId")})
	if err != nil {
		respondError(c, "link images", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h resource) removeImage(c *gin.Context) {
	out, err := h.repo.RemoveImageLinks(c.Request.Context(), c.Param("id"), repository.ImageIDs{c.Param("imageId")},
		repository.ImageLinkOptions{ShowcaseID: c.Param("showcaseId")})
	if err != nil {
		respondError(c, "unlink image", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
