package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/adboard/services"
	"github.com/princinho/adboard/utils"
)

type Deps struct {
	Ads          *services.AdService
	Categories   *services.CategoryService
	Validator    *utils.FileValidator
	MaxBulkFiles int
}

func RegisterRoutes(r gin.IRouter, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	ads := r.Group("/ads")
	{
		ads.GET("", GetAds(d.Ads))
		ads.POST("", CreateAd(d.Ads, d.Validator))
		ads.POST("/bulk", CreateAdsBulk(d.Ads, d.Validator, d.MaxBulkFiles))
		ads.GET("/:id", GetAd(d.Ads))
		ads.PUT("/:id", UpdateAd(d.Ads))
		ads.DELETE("/:id", DeleteAd(d.Ads))
	}

	categories := r.Group("/categories")
	{
		categories.GET("", GetCategories(d.Categories))
		categories.POST("", AddCategory(d.Categories))
		categories.GET("/:id", GetCategory(d.Categories))
		categories.PUT("/:id", UpdateCategory(d.Categories))
		categories.DELETE("/:id", DeleteCategory(d.Categories))
	}
}
