package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/catalog/repository"
)

// RegisterReviewRoutes mounts the review routes on rg. auth guards the write
// routes.
func RegisterReviewRoutes(rg *gin.RouterGroup, repo *repository.Repository, auth gin.HandlerFunc) {
	h := resource{repo: repo, single: "review", plural: "reviews"}

	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", auth, h.create)
	rg.PUT("/:id", auth, func(c *gin.Context) {
		if doc, ok := h.replace(c); ok {
			c.JSON(http.StatusOK, doc)
		}
	})
	rg.PATCH("/:id", auth, h.patch)
	rg.DELETE("/:id", auth, func(c *gin.Context) {
		if err := repo.Remove(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, "delete review", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review Deleted"})
	})
}
