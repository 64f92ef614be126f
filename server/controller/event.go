package controller

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Luismorlan/maag/calendar"
	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const eventNotFound = "Event not found"

var eventOnLanding = ExclusiveFlag{Model: &model.Event{}, Column: "is_on_landing"}

type eventFields struct {
	Title        string
	AuthorId     string
	Content      datatypes.JSON
	ImageUrl     string
	ImageCaption string
	Category     model.EventCategory
	Tags         model.StringList
	TechTags     model.StringList
	StartDate    time.Time
	EndDate      *time.Time
	DateType     string
	TimeMode     string
	StartTime    *string
	EndTime      *string
	Address      string
	IsOnLanding  bool
}

type eventInput struct {
	Title        string                     `json:"title"`
	Content      json.RawMessage            `json:"content"`
	ImageUrl     string                     `json:"imageUrl"`
	ImageCaption string                     `json:"imageCaption"`
	AuthorId     string                     `json:"authorId"`
	Category     string                     `json:"category"`
	Tags         normalizer.LooseStringList `json:"tags"`
	TechTags     normalizer.LooseStringList `json:"techTags"`
	StartDate    *string                    `json:"startDate"`
	EndDate      *string                    `json:"endDate"`
	TimeMode     string                     `json:"timeMode"`
	StartTime    *string                    `json:"startTime"`
	EndTime      *string                    `json:"endTime"`
	Address      string                     `json:"address"`
	IsOnLanding  normalizer.LooseBool       `json:"isOnLanding"`
}

func (in eventInput) normalize(e *model.Event, catalog normalizer.TagCatalog) error {
	title := strings.TrimSpace(in.Title)
	authorId := strings.TrimSpace(in.AuthorId)
	if title == "" || authorId == "" || normalizer.IsEmptyJSON(in.Content) {
		return normalizer.Invalid(contentFieldsMissing)
	}
	category, ok := normalizer.NormalizeEventCategory(in.Category)
	if !ok {
		return normalizer.Invalid("Unsupported event category")
	}
	schedule, err := normalizer.NormalizeEventSchedule(normalizer.EventScheduleInput{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		TimeMode:  in.TimeMode,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	})
	if err != nil {
		return err
	}
	if _, err := normalizer.ParseContentBlocks(in.Content); err != nil {
		return err
	}

	fields := eventFields{
		Title:        title,
		AuthorId:     authorId,
		Content:      datatypes.JSON(in.Content),
		ImageUrl:     strings.TrimSpace(in.ImageUrl),
		ImageCaption: strings.TrimSpace(in.ImageCaption),
		Category:     category,
		Tags:         normalizer.NormalizeTags(in.Tags, catalog.LegacyTagMap(string(category))),
		TechTags:     normalizer.NormalizeTechTags(in.TechTags),
		StartDate:    schedule.StartDate,
		EndDate:      schedule.EndDate,
		DateType:     schedule.DateType,
		TimeMode:     schedule.TimeMode,
		StartTime:    schedule.StartTime,
		EndTime:      schedule.EndTime,
		Address:      strings.TrimSpace(in.Address),
		IsOnLanding:  bool(in.IsOnLanding),
	}
	return copier.Copy(e, &fields)
}

func eventMediaUrls(e model.Event) []string {
	urls := []string{}
	if e.ImageUrl != "" {
		urls = append(urls, e.ImageUrl)
	}
	if blocks, err := normalizer.ParseContentBlocks(json.RawMessage(e.Content)); err == nil {
		urls = append(urls, normalizer.ContentMediaUrls(blocks)...)
	}
	return urls
}

func (ctrl *Controller) saveEvent(e *model.Event, create bool) error {
	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if e.IsOnLanding {
			if _, err := eventOnLanding.Reset(tx, e.Id, nil); err != nil {
				return err
			}
		}
		if create {
			return tx.Create(e).Error
		}
		return tx.Save(e).Error
	})
}

// CreateEvent handles POST /api/events
func (ctrl *Controller) CreateEvent(c *gin.Context) {
	var in eventInput
	if !bindJSON(c, &in) {
		return
	}

	e := model.Event{Id: ctrl.NewId(), CreatedAt: ctrl.Now()}
	if err := in.normalize(&e, ctrl.Tags); err != nil {
		respondError(c, err, "", "Server error while creating event")
		return
	}
	if err := ctrl.saveEvent(&e, true); err != nil {
		respondError(c, err, "", "Server error while creating event")
		return
	}

	ctrl.publish(model.KindEvent, model.ActionCreated, e.Id, e.Title, eventMediaUrls(e))
	c.JSON(http.StatusCreated, e)
}

// ListEvents handles GET /api/events
func (ctrl *Controller) ListEvents(c *gin.Context) {
	events := []model.Event{}
	if err := ctrl.DB.Order("start_date desc").Find(&events).Error; err != nil {
		respondError(c, err, "", "Server error while getting events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetCalendar handles GET /api/events/calendar
func (ctrl *Controller) GetCalendar(c *gin.Context) {
	events := []model.Event{}
	if err := ctrl.DB.Order("start_date asc").Find(&events).Error; err != nil {
		respondError(c, err, "", "Server error while getting calendar")
		return
	}

	var day time.Time
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := normalizer.ParseDate(raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Invalid date")
			return
		}
		day = parsed
	} else {
		day = calendar.DefaultDate(events, ctrl.Now())
	}

	c.JSON(http.StatusOK, calendar.BuildDay(events, day, strings.TrimSpace(c.Query("tag"))))
}

// GetEvent handles GET /api/events/:id
func (ctrl *Controller) GetEvent(c *gin.Context) {
	var e model.Event
	if err := ctrl.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, eventNotFound, "Server error while getting event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateEvent handles PUT /api/events/:id
func (ctrl *Controller) UpdateEvent(c *gin.Context) {
	var e model.Event
	if err := ctrl.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, eventNotFound, "Server error while updating event")
		return
	}

	var in eventInput
	if !bindJSON(c, &in) {
		return
	}
	if err := in.normalize(&e, ctrl.Tags); err != nil {
		respondError(c, err, "", "Server error while updating event")
		return
	}
	now := ctrl.Now()
	e.ModifiedAt = &now

	if err := ctrl.saveEvent(&e, false); err != nil {
		respondError(c, err, "", "Server error while updating event")
		return
	}

	ctrl.publish(model.KindEvent, model.ActionUpdated, e.Id, e.Title, eventMediaUrls(e))
	c.JSON(http.StatusOK, e)
}

// DeleteEvent handles DELETE /api/events/:id
func (ctrl *Controller) DeleteEvent(c *gin.Context) {
	var e model.Event
	if err := ctrl.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err, eventNotFound, "Server error while deleting event")
		return
	}
	if err := ctrl.DB.Delete(&model.Event{}, "id = ?", e.Id).Error; err != nil {
		respondError(c, err, "", "Server error while deleting event")
		return
	}

	ctrl.publish(model.KindEvent, model.ActionDeleted, e.Id, e.Title, eventMediaUrls(e))
	c.Status(http.StatusNoContent)
}
