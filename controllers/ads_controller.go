package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/adboard/dto"
	"github.com/princinho/adboard/services"
	"github.com/princinho/adboard/utils"
)

func GetAds(svc *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ads, err := svc.ListAds(c.Request.Context(), services.AdFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		})
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, ads)
	}
}

// CreateAd handles a single upload: multipart field "image" plus title,
// description and category. Errors after staging are reported as 400.
func CreateAd(svc *services.AdService, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		fh, err := c.FormFile("image")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				badRequest(c, "No file uploaded")
				return
			}
			badRequest(c, "invalid multipart form")
			return
		}

		var body dto.CreateAdDTO
		if err := c.ShouldBind(&body); err != nil {
			badRequest(c, err.Error())
			return
		}

		if _, err := v.ValidateFile(fh); err != nil {
			badRequest(c, err.Error())
			return
		}

		staged, err := svc.StageFiles(ctx, []*multipart.FileHeader{fh})
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}

		ad, err := svc.CreateAd(ctx, services.CreateAdInput{
			Title:       body.Title,
			Description: body.Description,
			Category:    body.Category,
		}, staged[0])
		if err != nil {
			respondError(c, err, http.StatusBadRequest)
			return
		}

		c.JSON(http.StatusCreated, ad)
	}
}

// CreateAdsBulk handles up to maxFiles uploads in field "images" with
// JSON-encoded "titles" and "descriptions" arrays and one "category".
func CreateAdsBulk(svc *services.AdService, v *utils.FileValidator, maxFiles int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		form, err := c.MultipartForm()
		if err != nil {
			badRequest(c, "invalid multipart form")
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			badRequest(c, "No files uploaded")
			return
		}
		if len(files) > maxFiles {
			badRequest(c, fmt.Sprintf("Too many files (max %d)", maxFiles))
			return
		}

		var body dto.BulkAdsDTO
		if err := c.ShouldBind(&body); err != nil {
			badRequest(c, err.Error())
			return
		}
		titles, err := utils.ParseStringArray(body.Titles)
		if err != nil {
			badRequest(c, "titles must be a JSON array of strings")
			return
		}
		descriptions, err := utils.ParseStringArray(body.Descriptions)
		if err != nil {
			badRequest(c, "descriptions must be a JSON array of strings")
			return
		}

		for _, fh := range files {
			if _, err := v.ValidateFile(fh); err != nil {
				badRequest(c, fmt.Sprintf("%s: %s", fh.Filename, err.Error()))
				return
			}
		}

		staged, err := svc.StageFiles(ctx, files)
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}

		ads, err := svc.CreateAdsBulk(ctx, services.BulkAdsInput{
			Titles:       titles,
			Descriptions: descriptions,
			Category:     body.Category,
		}, staged)
		if err != nil {
			respondError(c, err, http.StatusBadRequest)
			return
		}

		c.JSON(http.StatusCreated, ads)
	}
}

func GetAd(svc *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ad, err := svc.GetAd(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, ad)
	}
}

func UpdateAd(svc *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateAdDTO
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, err.Error())
			return
		}

		ad, err := svc.UpdateAd(c.Request.Context(), c.Param("id"), services.UpdateAdInput{
			Title:       body.Title,
			Description: body.Description,
			Category:    body.Category,
		})
		if err != nil {
			respondError(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, ad)
	}
}

func DeleteAd(svc *services.AdService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteAd(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Ad deleted successfully"})
	}
}
