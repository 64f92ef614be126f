package controller

import (
	"net/http"
	"strings"

	"github.com/Luismorlan/maag/model"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const userNotFound = "User profile not found"

type createUserInput struct {
	Uid       string `json:"uid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type updateUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateUserProfile handles POST /api/users. A profile that already exists,
// e.g. created by a checkout before sign up completed, keeps its role and
// billing fields and only gets the names.
func (ctrl *Controller) CreateUserProfile(c *gin.Context) {
	var in createUserInput
	if !bindJSON(c, &in) {
		return
	}
	uid := strings.TrimSpace(in.Uid)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if uid == "" || firstName == "" || lastName == "" {
		respondMessage(c, http.StatusBadRequest, "UID, firstName, and lastName are required")
		return
	}
	if isOtherUser(c, uid) {
		respondMessage(c, http.StatusForbidden, "Can not create a profile for another user")
		return
	}

	var user model.UserProfile
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, "uid = ?", uid).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = model.UserProfile{
				Uid:       uid,
				FirstName: firstName,
				LastName:  lastName,
				Role:      model.RoleReader,
				CreatedAt: ctrl.Now(),
			}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}
		user.FirstName = firstName
		user.LastName = lastName
		return tx.Save(&user).Error
	})
	if err != nil {
		respondError(c, err, "", "Server error while creating user profile")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUserProfile handles GET /api/users/:uid
func (ctrl *Controller) GetUserProfile(c *gin.Context) {
	var user model.UserProfile
	if err := ctrl.DB.First(&user, "uid = ?", c.Param("uid")).Error; err != nil {
		respondError(c, err, userNotFound, "Server error while getting user profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUserProfile handles PUT /api/users/:uid
func (ctrl *Controller) UpdateUserProfile(c *gin.Context) {
	var in updateUserInput
	if !bindJSON(c, &in) {
		return
	}
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		respondMessage(c, http.StatusBadRequest, "First name and last name are required")
		return
	}

	var user model.UserProfile
	if err := ctrl.DB.First(&user, "uid = ?", c.Param("uid")).Error; err != nil {
		respondError(c, err, userNotFound, "Server error while updating user profile")
		return
	}
	err := ctrl.DB.Model(&user).Updates(map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
	}).Error
	if err != nil {
		respondError(c, err, "", "Server error while updating user profile")
		return
	}
	user.FirstName = firstName
	user.LastName = lastName
	c.JSON(http.StatusOK, user)
}
