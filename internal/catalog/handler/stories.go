package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/catalog/repository"
)

// RegisterCustomerStoryRoutes mounts the customer story routes on rg.
func RegisterCustomerStoryRoutes(rg *gin.RouterGroup, repo *repository.Repository, auth gin.HandlerFunc) {
	h := resource{repo: repo, single: "customerStory", plural: "customerStories"}

	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", auth, h.create)
	rg.PUT("/:id", auth, func(c *gin.Context) {
		if doc, ok := h.replace(c); ok {
			c.JSON(http.StatusOK, doc)
		}
	})
	rg.PATCH("/:id", auth, h.patch)

	rg.GET("/:id/imagesCL", func(c *gin.Context) {
		images, err := repo.ListImages(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, "list story images", err)
			return
		}
		c.JSON(http.StatusOK, images)
	})
	rg.GET("/:id/imagesCL/:imageId", func(c *gin.Context) {
		img, err := repo.FindImage(c.Request.Context(), c.Param("id"), c.Param("imageId"))
		if err != nil {
			respondError(c, "get story image", err)
			return
		}
		c.JSON(http.StatusOK, img)
	})
	rg.POST("/:id/imagesCL", auth, h.addImages)
	rg.DELETE("/:id/imagesCL/:imageId", auth, h.removeImage)
}
