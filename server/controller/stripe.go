package controller

import (
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/Luismorlan/maag/billing"
	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	"github.com/Luismorlan/maag/server/middlewares"
	"github.com/Luismorlan/maag/utils"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	stripeEventSource   = "stripe"
	maxWebhookBodyBytes = 1 << 16
)

type checkoutInput struct {
	PriceId string `json:"priceId"`
	UserId  string `json:"userId"`
}

type portalInput struct {
	CustomerId string `json:"customerId"`
}

// CreateCheckoutSession handles POST /api/stripe/create-checkout-session
func (ctrl *Controller) CreateCheckoutSession(c *gin.Context) {
	var in checkoutInput
	if !bindJSON(c, &in) {
		return
	}
	if strings.TrimSpace(in.UserId) == "" {
		respondMessage(c, http.StatusBadRequest, "User ID is required")
		return
	}
	if strings.TrimSpace(in.PriceId) == "" {
		respondMessage(c, http.StatusBadRequest, "Price ID is required")
		return
	}
	if isOtherUser(c, strings.TrimSpace(in.UserId)) {
		respondMessage(c, http.StatusForbidden, "Can not subscribe another user")
		return
	}

	url, err := ctrl.Billing.CreateCheckoutSession(c.Request.Context(), strings.TrimSpace(in.PriceId), strings.TrimSpace(in.UserId))
	if err != nil {
		respondError(c, err, "", "Server error while creating checkout session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreatePortalSession handles POST /api/stripe/create-portal-session
func (ctrl *Controller) CreatePortalSession(c *gin.Context) {
	var in portalInput
	if !bindJSON(c, &in) {
		return
	}
	if strings.TrimSpace(in.CustomerId) == "" {
		respondMessage(c, http.StatusBadRequest, "Customer ID is required")
		return
	}
	customerId := strings.TrimSpace(in.CustomerId)
	allowed, err := ctrl.canManageCustomer(c, customerId)
	if err != nil {
		respondError(c, err, "", "Server error while creating portal session")
		return
	}
	if !allowed {
		respondMessage(c, http.StatusForbidden, "Can not manage another user's subscription")
		return
	}

	url, err := ctrl.Billing.CreatePortalSession(c.Request.Context(), customerId)
	if err != nil {
		respondError(c, err, "", "Server error while creating portal session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// canManageCustomer checks that the signed-in user owns the payment
// customer. Admins manage every customer.
func (ctrl *Controller) canManageCustomer(c *gin.Context, customerId string) (bool, error) {
	sub := c.GetHeader(middlewares.SubjectHeader)
	if sub == "" {
		return true, nil
	}
	var user model.UserProfile
	err := ctrl.DB.First(&user, "uid = ?", sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "fail to load user "+sub)
	}
	if user.Role == model.RoleAdmin {
		return true, nil
	}
	return user.StripeCustomerId != nil && *user.StripeCustomerId == customerId, nil
}

// StripeWebhook handles the payment provider webhook. Deliveries already
// handled are acknowledged without touching the users again.
func (ctrl *Controller) StripeWebhook(c *gin.Context) {
	ctx := c.Request.Context()
	payload, err := ioutil.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Webhook Error: "+err.Error())
		return
	}

	event, err := billing.ConstructEvent(payload, c.GetHeader(billing.SignatureHeader), ctrl.WebhookSecret)
	if err != nil {
		if billing.IsInvalidSignature(err) {
			Logger.Log.WithError(err).Warn("reject stripe webhook with invalid signature")
		} else {
			Logger.Log.WithError(err).Error("fail to decode signed stripe webhook")
		}
		respondMessage(c, http.StatusBadRequest, "Webhook Error: "+err.Error())
		return
	}
	log := Logger.Log.WithFields(logrus.Fields{"event_id": event.Id, "event_type": event.Type})

	first, err := ctrl.ProcessedEvents.MarkProcessed(ctx, stripeEventSource, event.Id)
	if err != nil {
		// Apply is idempotent, a redelivery only repeats the same writes.
		log.WithError(err).Warn("fail to check processed stripe event")
		first = true
	}
	if !first {
		log.Info("stripe event already processed")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	user, err := ctrl.subscriptionSync().Apply(ctx, event)
	if err != nil {
		if forgetErr := ctrl.ProcessedEvents.Forget(ctx, stripeEventSource, event.Id); forgetErr != nil {
			log.WithError(forgetErr).Warn("fail to forget stripe event")
		}
		ctrl.respondWebhookError(c, event, err)
		return
	}

	if user != nil {
		log.WithField("uid", user.Uid).Info("user subscription updated")
		ctrl.publishEvent(model.ContentEvent{
			Kind:   model.KindSubscription,
			Action: model.ActionUpdated,
			Id:     user.Uid,
			Title:  strings.TrimSpace(user.FirstName + " " + user.LastName),
			Status: utils.StringValue(user.StripeSubscriptionStatus),
		})
	} else {
		log.Info("unhandled stripe event type")
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (ctrl *Controller) respondWebhookError(c *gin.Context, event billing.Event, err error) {
	if v, ok := normalizer.IsValidationError(err); ok {
		respondMessage(c, http.StatusBadRequest, v.Message)
		return
	}
	if errors.Is(err, billing.ErrUserNotFound) {
		customerId := ""
		if event.Subscription != nil {
			customerId = event.Subscription.CustomerId
		}
		respondMessage(c, http.StatusNotFound, "No user found with stripeCustomerId: "+customerId)
		return
	}
	respondError(c, err, "", "Error updating user subscription.")
}
