package controller

import (
	"net/http"

	"github.com/Luismorlan/maag/normalizer"
	"github.com/Luismorlan/maag/server/middlewares"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const invalidBodyMessage = "Invalid request body"

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondError maps err to a status: record not found is 404 with
// notFoundMessage, validation errors are 400 with their own message and
// anything else is logged and answered with a 500 serverMessage.
func respondError(c *gin.Context, err error, notFoundMessage string, serverMessage string) {
	if v, ok := normalizer.IsValidationError(err); ok {
		respondMessage(c, http.StatusBadRequest, v.Message)
		return
	}
	if notFoundMessage != "" && errors.Is(err, gorm.ErrRecordNotFound) {
		respondMessage(c, http.StatusNotFound, notFoundMessage)
		return
	}
	Logger.Log.WithError(err).Error(serverMessage)
	respondMessage(c, http.StatusInternalServerError, serverMessage)
}

// isOtherUser reports whether an authenticated request acts on behalf of a
// different user. Requests without a subject come from a server running
// with auth bypassed.
func isOtherUser(c *gin.Context, uid string) bool {
	sub := c.GetHeader(middlewares.SubjectHeader)
	return sub != "" && sub != uid
}

// bindJSON decodes the body and answers 400 when it is not a JSON object of
// the expected shape.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondMessage(c, http.StatusBadRequest, invalidBodyMessage)
		return false
	}
	return true
}
