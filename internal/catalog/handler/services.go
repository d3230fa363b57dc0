package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/apperr"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/catalog/repository"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"github.com/vendorhub/vendorhub/backend/go-services/pkg/middleware"
)

// RegisterServiceRoutes mounts the service, showcase and image link routes
// on rg.
func RegisterServiceRoutes(rg *gin.RouterGroup, repo *repository.Repository, auth gin.HandlerFunc) {
	h := resource{repo: repo, single: "service", plural: "services"}

	rg.GET("", h.list)
	rg.POST("", auth, h.create)

	// Hidden services are reported as missing pages.
	rg.GET("/:id", func(c *gin.Context) {
		sel := query.WithField(c.Query("select"), repository.FieldShow)
		doc, err := repo.FindOne(c.Request.Context(), c.Param("id"), repository.FindOneOptions{Select: sel})
		if err != nil {
			respondError(c, "get service", err)
			return
		}
		if doc == nil || doc[repository.FieldShow] != true {
			c.JSON(http.StatusNotFound, gin.H{"message": "Page not found", "eId": apperr.CodeNotFound})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "done", "service": doc})
	})
	rg.PUT("/:id", auth, func(c *gin.Context) {
		if doc, ok := h.replace(c); ok {
			c.JSON(http.StatusOK, gin.H{"service": doc})
		}
	})
	rg.PATCH("/:id", auth, h.patch)

	rg.GET("/:id/showcases", func(c *gin.Context) {
		list, err := repo.ListShowcases(c.Request.Context(), c.Param("id"), repository.ShowcaseQuery{Select: c.Query("select")})
		if err != nil {
			respondError(c, "list showcases", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"showcases": list, "id": c.Param("id")})
	})
	rg.GET("/:id/showcases/:showcaseId", func(c *gin.Context) {
		sc, err := repo.FindShowcase(c.Request.Context(), c.Param("id"), c.Param("showcaseId"), repository.ShowcaseQuery{Select: c.Query("select")})
		if err != nil {
			respondError(c, "get showcase", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"showcases": sc, "id": c.Param("id")})
	})
	rg.POST("/:id/showcases", auth, func(c *gin.Context) {
		sc, ok := bodyDoc(c, "showcase")
		if !ok {
			badRequest(c)
			return
		}
		doc, err := repo.AppendShowcase(c.Request.Context(), c.Param("id"), sc, mutation(c))
		if err != nil {
			respondError(c, "append showcase", err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})
	rg.PUT("/:id/showcases/:showcaseId", auth, func(c *gin.Context) {
		sc, ok := bodyDoc(c, "showcase")
		if !ok {
			badRequest(c)
			return
		}
		sc["_id"] = c.Param("showcaseId")
		doc, err := repo.ReplaceShowcase(c.Request.Context(), c.Param("id"), sc, mutation(c))
		if err != nil {
			respondError(c, "replace showcase", err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})
	rg.PATCH("/:id/showcases/:showcaseId", auth, func(c *gin.Context) {
		props, ok := bodyDoc(c, "payload")
		if !ok {
			badRequest(c)
			return
		}
		doc, err := repo.PatchShowcase(c.Request.Context(), c.Param("id"), c.Param("showcaseId"), props, mutation(c))
		if err != nil {
			respondError(c, "patch showcase", err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})
	rg.DELETE("/:id/showcases/:showcaseId", auth, func(c *gin.Context) {
		if err := repo.RemoveShowcase(c.Request.Context(), c.Param("id"), c.Param("showcaseId")); err != nil {
			respondError(c, "remove showcase", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Showcase Removed"})
	})

	rg.POST("/:id/imagesCL", auth, h.addImages)
	rg.DELETE("/:id/imagesCL/:imageId", auth, h.removeImage)
	rg.POST("/:id/showcases/:showcaseId/imagesCL", auth, h.addImages)
	rg.DELETE("/:id/showcases/:showcaseId/imagesCL/:imageId", auth, h.removeImage)
}

func mutation(c *gin.Context) repository.MutationOptions {
	return repository.MutationOptions{LastModifiedBy: middleware.Subject(c)}
}
