package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"gorm.io/datatypes"
)

const interviewNotFound = "Interview not found"

type interviewFields struct {
	Title        string
	Interviewee  string
	Lead         string
	MainQuote    string
	AuthorId     string
	Content      datatypes.JSON
	ImageUrl     string
	ImageCaption string
	Tags         model.StringList
}

type interviewInput struct {
	Title        string                     `json:"title"`
	Interviewee  string                     `json:"interviewee"`
	Lead         string                     `json:"lead"`
	MainQuote    string                     `json:"mainQuote"`
	Content      json.RawMessage            `json:"content"`
	ImageUrl     string                     `json:"imageUrl"`
	ImageCaption string                     `json:"imageCaption"`
	AuthorId     string                     `json:"authorId"`
	Tags         normalizer.LooseStringList `json:"tags"`
}

func (in interviewInput) normalize(i *model.Interview) error {
	title := strings.TrimSpace(in.Title)
	authorId := strings.TrimSpace(in.AuthorId)
	if title == "" || authorId == "" || normalizer.IsEmptyJSON(in.Content) {
		return normalizer.Invalid(contentFieldsMissing)
	}
	blocks, err := normalizer.ParseContentBlocks(in.Content)
	if err != nil {
		return err
	}
	lead := strings.TrimSpace(in.Lead)
	if lead == "" {
		lead = normalizer.DeriveLead(blocks)
	}

	fields := interviewFields{
		Title:        title,
		Interviewee:  strings.TrimSpace(in.Interviewee),
		Lead:         normalizer.Truncate(lead, normalizer.MaxLeadLength),
		MainQuote:    strings.TrimSpace(in.MainQuote),
		AuthorId:     authorId,
		Content:      datatypes.JSON(in.Content),
		ImageUrl:     strings.TrimSpace(in.ImageUrl),
		ImageCaption: strings.TrimSpace(in.ImageCaption),
		Tags:         normalizer.NormalizeTags(in.Tags, nil),
	}
	return copier.Copy(i, &fields)
}

func interviewMediaUrls(i model.Interview) []string {
	urls := []string{}
	if i.ImageUrl != "" {
		urls = append(urls, i.ImageUrl)
	}
	if blocks, err := normalizer.ParseContentBlocks(json.RawMessage(i.Content)); err == nil {
		urls = append(urls, normalizer.ContentMediaUrls(blocks)...)
	}
	return urls
}

// CreateInterview handles POST /api/interviews
func (ctrl *Controller) CreateInterview(c *gin.Context) {
	var in interviewInput
	if !bindJSON(c, &in) {
		return
	}

	i := model.Interview{Id: ctrl.NewId(), CreatedAt: ctrl.Now()}
	if err := in.normalize(&i); err != nil {
		respondError(c, err, "", "Server error while creating interview")
		return
	}
	if err := ctrl.DB.Create(&i).Error; err != nil {
		respondError(c, err, "", "Server error while creating interview")
		return
	}

	ctrl.publish(model.KindInterview, model.ActionCreated, i.Id, i.Title, interviewMediaUrls(i))
	c.JSON(http.StatusCreated, i)
}

// ListInterviews handles GET /api/interviews
func (ctrl *Controller) ListInterviews(c *gin.Context) {
	interviews := []model.Interview{}
	if err := ctrl.DB.Order("created_at desc").Find(&interviews).Error; err != nil {
		respondError(c, err, "", "Server error while getting interviews")
		return
	}
	c.JSON(http.StatusOK, interviews)
}

// GetInterview handles GET /api/interviews/:id
func (ctrl *Controller) GetInterview(c *gin.Context) {
	var i model.Interview
	if err := ctrl.DB.First(&i, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, interviewNotFound, "Server error while getting interview")
		return
	}
	author, err := ctrl.findAuthor(i.AuthorId)
	if err != nil {
		respondError(c, err, "", "Server error while getting interview")
		return
	}
	c.JSON(http.StatusOK, model.InterviewWithAuthor{Interview: i, Author: author})
}

// UpdateInterview handles PUT /api/interviews/:id
func (ctrl *Controller) UpdateInterview(c *gin.Context) {
	var i model.Interview
	if err := ctrl.DB.First(&i, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, interviewNotFound, "Server error while updating interview")
		return
	}

	var in interviewInput
	if !bindJSON(c, &in) {
		return
	}
	if err := in.normalize(&i); err != nil {
		respondError(c, err, "", "Server error while updating interview")
		return
	}
	now := ctrl.Now()
	i.ModifiedAt = &now

	if err := ctrl.DB.Save(&i).Error; err != nil {
		respondError(c, err, "", "Server error while updating interview")
		return
	}

	ctrl.publish(model.KindInterview, model.ActionUpdated, i.Id, i.Title, interviewMediaUrls(i))
	c.JSON(http.StatusOK, i)
}

// DeleteInterview handles DELETE /api/interviews/:id
func (ctrl *Controller) DeleteInterview(c *gin.Context) {
	var i model.Interview
	if err := ctrl.DB.First(&i, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, interviewNotFound, "Server error while deleting interview")
		return
	}
	if err := ctrl.DB.Delete(&model.Interview{}, "id = ?", i.Id).Error; err != nil {
		respondError(c, err, "", "Server error while deleting interview")
		return
	}

	ctrl.publish(model.KindInterview, model.ActionDeleted, i.Id, i.Title, interviewMediaUrls(i))
	c.Status(http.StatusNoContent)
}
