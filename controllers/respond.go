package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/adboard/services"
)

// respondError maps service errors to a status and a {"message": ...} body.
// Unclassified errors use fallback and are attached to the context for the request logger.
func respondError(c *gin.Context, err error, fallback int) {
	var (
		notFound   *services.NotFoundError
		validation *services.ValidationError
		conflict   *services.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound.Message})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validation.Message})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"message": conflict.Message})
	default:
		_ = c.Error(err)
		c.JSON(fallback, gin.H{"message": err.Error()})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
