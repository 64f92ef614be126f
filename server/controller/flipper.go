package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	"github.com/gin-gonic/gin"
)

const (
	flipperNotFound      = "Flipper not found"
	flipperTitleRequired = "Заголовок обязателен"
	flipperNeedsSlide    = "Для листалки нужен хотя бы один слайд"
)

type flipperInput struct {
	Title           string                     `json:"title"`
	Category        string                     `json:"category"`
	Tags            normalizer.LooseStringList `json:"tags"`
	TechTags        normalizer.LooseStringList `json:"techTags"`
	CarouselContent json.RawMessage            `json:"carouselContent"`
}

func (in flipperInput) normalize(f *model.Flipper, catalog normalizer.TagCatalog) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return normalizer.Invalid(flipperTitleRequired)
	}
	var slides []model.Slide
	if normalizer.IsEmptyJSON(in.CarouselContent) || json.Unmarshal(in.CarouselContent, &slides) != nil {
		return normalizer.Invalid(flipperNeedsSlide)
	}
	slides = normalizer.NormalizeSlides(slides)
	if len(slides) == 0 {
		return normalizer.Invalid(flipperNeedsSlide)
	}

	f.Title = title
	f.Category = normalizer.NormalizeArticleCategory(in.Category).Category
	f.Tags = normalizer.NormalizeTags(in.Tags, catalog.LegacyTagMap(f.Category))
	f.TechTags = normalizer.NormalizeTechTags(in.TechTags)
	f.CarouselContent = slides
	return nil
}

func flipperMediaUrls(f model.Flipper) []string {
	urls := []string{}
	for _, s := range f.CarouselContent {
		if s.ImageUrl != "" {
			urls = append(urls, s.ImageUrl)
		}
	}
	return urls
}

// CreateFlipper handles POST /api/flippers
func (ctrl *Controller) CreateFlipper(c *gin.Context) {
	var in flipperInput
	if !bindJSON(c, &in) {
		return
	}

	f := model.Flipper{Id: ctrl.NewId(), CreatedAt: ctrl.Now()}
	if err := in.normalize(&f, ctrl.Tags); err != nil {
		respondError(c, err, "", "Server error while creating flipper")
		return
	}
	if err := ctrl.DB.Create(&f).Error; err != nil {
		respondError(c, err, "", "Server error while creating flipper")
		return
	}

	ctrl.publish(model.KindFlipper, model.ActionCreated, f.Id, f.Title, flipperMediaUrls(f))
	c.JSON(http.StatusCreated, f)
}

// ListFlippers handles GET /api/flippers
func (ctrl *Controller) ListFlippers(c *gin.Context) {
	flippers := []model.Flipper{}
	if err := ctrl.DB.Order("created_at desc").Find(&flippers).Error; err != nil {
		respondError(c, err, "", "Server error while getting flippers")
		return
	}
	c.JSON(http.StatusOK, flippers)
}

// GetFlipper handles GET /api/flippers/:id
func (ctrl *Controller) GetFlipper(c *gin.Context) {
	var f model.Flipper
	if err := ctrl.DB.First(&f, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, flipperNotFound, "Server error while getting flipper")
		return
	}
	c.JSON(http.StatusOK, f)
}

// UpdateFlipper handles PUT /api/flippers/:id
func (ctrl *Controller) UpdateFlipper(c *gin.Context) {
	var f model.Flipper
	if err := ctrl.DB.First(&f, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, flipperNotFound, "Server error while updating flipper")
		return
	}

	var in flipperInput
	if !bindJSON(c, &in) {
		return
	}
	if err := in.normalize(&f, ctrl.Tags); err != nil {
		respondError(c, err, "", "Server error while updating flipper")
		return
	}
	now := ctrl.Now()
	f.ModifiedAt = &now

	if err := ctrl.DB.Save(&f).Error; err != nil {
		respondError(c, err, "", "Server error while updating flipper")
		return
	}

	ctrl.publish(model.KindFlipper, model.ActionUpdated, f.Id, f.Title, flipperMediaUrls(f))
	c.JSON(http.StatusOK, f)
}

// DeleteFlipper handles DELETE /api/flippers/:id
func (ctrl *Controller) DeleteFlipper(c *gin.Context) {
	var f model.Flipper
	if err := ctrl.DB.First(&f, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, flipperNotFound, "Server error while deleting flipper")
		return
	}
	if err := ctrl.DB.Delete(&model.Flipper{}, "id = ?", f.Id).Error; err != nil {
		respondError(c, err, "", "Server error while deleting flipper")
		return
	}

	ctrl.publish(model.KindFlipper, model.ActionDeleted, f.Id, f.Title, flipperMediaUrls(f))
	c.Status(http.StatusNoContent)
}
