package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/adboard/dto"
	"github.com/princinho/adboard/services"
)

func GetCategories(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func AddCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateCategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}

		cat, err := svc.CreateCategory(c.Request.Context(), services.CreateCategoryInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func GetCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := svc.GetCategory(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func UpdateCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateCategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}

		cat, err := svc.UpdateCategory(c.Request.Context(), c.Param("id"), services.UpdateCategoryInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			respondError(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func DeleteCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
