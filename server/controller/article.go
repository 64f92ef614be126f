package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	"github.com/Luismorlan/maag/utils"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	articleNotFound      = "Article not found"
	contentFieldsMissing = "Title, content, and authorId are required"
)

var (
	articleOnLanding = ExclusiveFlag{Model: &model.Article{}, Column: "is_on_landing"}
	articleMain      = ExclusiveFlag{Model: &model.Article{}, Column: "is_main_in_category", ScopeColumn: "category"}
)

// articleFields are the columns an editor writes. Id and timestamps are
// owned by the handlers.
type articleFields struct {
	Title            string
	Lead             string
	AuthorId         string
	Content          datatypes.JSON
	ImageUrl         string
	ImageCaption     string
	Category         string
	Tags             model.StringList
	TechTags         model.StringList
	IsHotContent     bool
	IsOnLanding      bool
	IsMainInCategory bool
	IsNews           bool
}

type articleInput struct {
	Title            string                     `json:"title"`
	Lead             string                     `json:"lead"`
	Content          json.RawMessage            `json:"content"`
	ImageUrl         string                     `json:"imageUrl"`
	ImageCaption     string                     `json:"imageCaption"`
	AuthorId         string                     `json:"authorId"`
	Category         string                     `json:"category"`
	Tags             normalizer.LooseStringList `json:"tags"`
	TechTags         normalizer.LooseStringList `json:"techTags"`
	IsHotContent     normalizer.LooseBool       `json:"isHotContent"`
	IsOnLanding      normalizer.LooseBool       `json:"isOnLanding"`
	IsMainInCategory normalizer.LooseBool       `json:"isMainInCategory"`
	IsNews           normalizer.LooseBool       `json:"isNews"`
}

// normalize validates the input and fills the writable fields of a.
func (in articleInput) normalize(a *model.Article, catalog normalizer.TagCatalog) error {
	title := strings.TrimSpace(in.Title)
	authorId := strings.TrimSpace(in.AuthorId)
	if title == "" || authorId == "" || normalizer.IsEmptyJSON(in.Content) {
		return normalizer.Invalid(contentFieldsMissing)
	}
	blocks, err := normalizer.ParseContentBlocks(in.Content)
	if err != nil {
		return err
	}

	category := normalizer.NormalizeArticleCategory(in.Category)
	lead := strings.TrimSpace(in.Lead)
	if lead == "" {
		lead = normalizer.DeriveLead(blocks)
	}

	fields := articleFields{
		Title:            title,
		Lead:             normalizer.Truncate(lead, normalizer.MaxLeadLength),
		AuthorId:         authorId,
		Content:          datatypes.JSON(in.Content),
		ImageUrl:         strings.TrimSpace(in.ImageUrl),
		ImageCaption:     strings.TrimSpace(in.ImageCaption),
		Category:         category.Category,
		Tags:             normalizer.NormalizeTags(in.Tags, catalog.LegacyTagMap(category.Category)),
		TechTags:         normalizer.NormalizeTechTags(in.TechTags),
		IsHotContent:     bool(in.IsHotContent) || category.IsHotContent,
		IsOnLanding:      bool(in.IsOnLanding),
		IsMainInCategory: bool(in.IsMainInCategory),
		IsNews:           bool(in.IsNews) || category.IsNews,
	}
	return copier.Copy(a, &fields)
}

func articleMediaUrls(a model.Article) []string {
	urls := []string{}
	if a.ImageUrl != "" {
		urls = append(urls, a.ImageUrl)
	}
	if blocks, err := normalizer.ParseContentBlocks(json.RawMessage(a.Content)); err == nil {
		urls = append(urls, normalizer.ContentMediaUrls(blocks)...)
	}
	return urls
}

// saveArticle writes a and resets the exclusive flags it claims.
func (ctrl *Controller) saveArticle(a *model.Article, create bool) error {
	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if a.IsOnLanding {
			if _, err := articleOnLanding.Reset(tx, a.Id, nil); err != nil {
				return err
			}
		}
		if a.IsMainInCategory {
			if _, err := articleMain.Reset(tx, a.Id, a.Category); err != nil {
				return err
			}
		}
		if create {
			return tx.Create(a).Error
		}
		return tx.Save(a).Error
	})
}

// CreateArticle handles POST /api/articles
func (ctrl *Controller) CreateArticle(c *gin.Context) {
	var in articleInput
	if !bindJSON(c, &in) {
		return
	}

	a := model.Article{Id: ctrl.NewId(), CreatedAt: ctrl.Now()}
	if err := in.normalize(&a, ctrl.Tags); err != nil {
		respondError(c, err, "", "Server error while creating article")
		return
	}
	if err := ctrl.saveArticle(&a, true); err != nil {
		respondError(c, err, "", "Server error while creating article")
		return
	}

	ctrl.publish(model.KindArticle, model.ActionCreated, a.Id, a.Title, articleMediaUrls(a))
	c.JSON(http.StatusCreated, a)
}

// ArticleFilter is the query of GET /api/articles. Category accepts the
// same legacy values as the article payload.
type ArticleFilter struct {
	Category     string
	Tag          string
	IsNews       *bool
	IsHotContent bool
	Limit        int
}

func parseArticleFilter(c *gin.Context) (ArticleFilter, error) {
	f := ArticleFilter{
		Tag: strings.TrimSpace(c.Query("tag")),
	}
	if raw := c.Query("isNews"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, normalizer.Invalid("isNews must be true or false")
		}
		f.IsNews = &v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return f, normalizer.Invalid("limit must be a positive number")
		}
		f.Limit = v
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category := normalizer.NormalizeArticleCategory(raw)
		f.Category = category.Category
		f.IsHotContent = category.IsHotContent
		if category.IsNews && f.IsNews == nil {
			isNews := true
			f.IsNews = &isNews
		}
	}
	return f, nil
}

// hasTag matches tags by exact value and tech tags by slug.
func hasTag(a model.Article, tag string) bool {
	return utils.ContainsString(a.Tags, tag) || utils.ContainsString(a.TechTags, normalizer.SlugifyTag(tag))
}

// ListArticles handles GET /api/articles
func (ctrl *Controller) ListArticles(c *gin.Context) {
	f, err := parseArticleFilter(c)
	if err != nil {
		respondError(c, err, "", "Server error while getting articles")
		return
	}

	q := ctrl.DB.Order("created_at desc")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.IsHotContent {
		q = q.Where("is_hot_content = ?", true)
	}
	if f.IsNews != nil {
		q = q.Where("is_news = ?", *f.IsNews)
	}
	if f.Limit > 0 && f.Tag == "" {
		q = q.Limit(f.Limit)
	}

	articles := []model.Article{}
	if err := q.Find(&articles).Error; err != nil {
		respondError(c, err, "", "Server error while getting articles")
		return
	}

	if f.Tag != "" {
		filtered := []model.Article{}
		for _, a := range articles {
			if hasTag(a, f.Tag) {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
		if f.Limit > 0 && len(articles) > f.Limit {
			articles = articles[:f.Limit]
		}
	}
	c.JSON(http.StatusOK, articles)
}

// findAuthor returns nil when the author does not exist.
func (ctrl *Controller) findAuthor(id string) (*model.Author, error) {
	if id == "" {
		return nil, nil
	}
	var author model.Author
	err := ctrl.DB.First(&author, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetArticle handles GET /api/articles/:id
func (ctrl *Controller) GetArticle(c *gin.Context) {
	var a model.Article
	if err := ctrl.DB.First(&a, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, articleNotFound, "Server error while getting article")
		return
	}
	author, err := ctrl.findAuthor(a.AuthorId)
	if err != nil {
		respondError(c, err, "", "Server error while getting article")
		return
	}
	c.JSON(http.StatusOK, model.ArticleWithAuthor{Article: a, Author: author})
}

// UpdateArticle handles PUT /api/articles/:id
func (ctrl *Controller) UpdateArticle(c *gin.Context) {
	var a model.Article
	if err := ctrl.DB.First(&a, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, articleNotFound, "Server error while updating article")
		return
	}

	var in articleInput
	if !bindJSON(c, &in) {
		return
	}
	if err := in.normalize(&a, ctrl.Tags); err != nil {
		respondError(c, err, "", "Server error while updating article")
		return
	}
	now := ctrl.Now()
	a.ModifiedAt = &now

	if err := ctrl.saveArticle(&a, false); err != nil {
		respondError(c, err, "", "Server error while updating article")
		return
	}

	ctrl.publish(model.KindArticle, model.ActionUpdated, a.Id, a.Title, articleMediaUrls(a))
	c.JSON(http.StatusOK, a)
}

// DeleteArticle handles DELETE /api/articles/:id
func (ctrl *Controller) DeleteArticle(c *gin.Context) {
	var a model.Article
	if err := ctrl.DB.First(&a, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, articleNotFound, "Server error while deleting article")
		return
	}
	if err := ctrl.DB.Delete(&model.Article{}, "id = ?", a.Id).Error; err != nil {
		respondError(c, err, "", "Server error while deleting article")
		return
	}

	ctrl.publish(model.KindArticle, model.ActionDeleted, a.Id, a.Title, articleMediaUrls(a))
	c.Status(http.StatusNoContent)
}
