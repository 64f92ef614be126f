package controller

import (
	"net/http"
	"strings"

	"github.com/Luismorlan/maag/model"
	"github.com/gin-gonic/gin"
)

type authorInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ListAuthors handles GET /api/authors
func (ctrl *Controller) ListAuthors(c *gin.Context) {
	authors := []model.Author{}
	if err := ctrl.DB.Order("last_name asc").Find(&authors).Error; err != nil {
		respondError(c, err, "", "Server error while getting authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

// CreateAuthor handles POST /api/authors
func (ctrl *Controller) CreateAuthor(c *gin.Context) {
	var in authorInput
	if !bindJSON(c, &in) {
		return
	}
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		respondMessage(c, http.StatusBadRequest, "firstName and lastName are required")
		return
	}

	author := model.Author{
		Id:        ctrl.NewId(),
		FirstName: firstName,
		LastName:  lastName,
		Role:      model.RoleAuthor,
		Avatar:    "",
		CreatedAt: ctrl.Now(),
	}
	if err := ctrl.DB.Create(&author).Error; err != nil {
		respondError(c, err, "", "Server error while creating author")
		return
	}

	ctrl.publish(model.KindAuthor, model.ActionCreated, author.Id, firstName+" "+lastName, nil)
	c.JSON(http.StatusCreated, author)
}
