package billing

import (
	"context"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const StatusCanceled = "canceled"

var ErrUserNotFound = errors.New("user not found")

// SubscriptionSync mirrors subscription state onto user profiles.
type SubscriptionSync struct {
	DB       *gorm.DB
	Provider Provider
}

// Apply updates the user touched by e and returns it. Unknown event types
// return (nil, nil). Missing checkout data is a normalizer.ValidationError,
// a subscription with no matching user is ErrUserNotFound.
func (s *SubscriptionSync) Apply(ctx context.Context, e Event) (*model.UserProfile, error) {
	switch e.Type {
	case EventCheckoutCompleted:
		return s.applyCheckout(ctx, e.Checkout)
	case EventSubscriptionUpdated:
		return s.applySubscription(ctx, e.Subscription, false)
	case EventSubscriptionDeleted:
		return s.applySubscription(ctx, e.Subscription, true)
	}
	return nil, nil
}

func (s *SubscriptionSync) applyCheckout(ctx context.Context, c *CheckoutCompleted) (*model.UserProfile, error) {
	if c == nil || c.UserId == "" || c.SubscriptionId == "" {
		return nil, normalizer.Invalid("Missing userId or subscription")
	}

	sub, err := s.Provider.GetSubscription(ctx, c.SubscriptionId)
	if err != nil {
		return nil, err
	}
	customerId := sub.CustomerId
	if customerId == "" {
		customerId = c.CustomerId
	}

	var user model.UserProfile
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, "uid = ?", c.UserId).Error
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if isNew {
			user = model.UserProfile{Uid: c.UserId, Role: model.RoleReader}
		} else if err != nil {
			return err
		}
		user.StripeCustomerId = stringPtr(customerId)
		user.StripeSubscriptionId = stringPtr(sub.Id)
		user.StripePriceId = stringPtr(sub.PriceId)
		user.StripeSubscriptionStatus = stringPtr(sub.Status)
		user.StripeCurrentPeriodEnd = int64Ptr(sub.CurrentPeriodEnd)
		if isNew {
			return tx.Create(&user).Error
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to save checkout")
	}
	return &user, nil
}

func (s *SubscriptionSync) applySubscription(ctx context.Context, sub *Subscription, deleted bool) (*model.UserProfile, error) {
	if sub == nil || sub.CustomerId == "" {
		return nil, normalizer.Invalid("Missing customer")
	}

	var user model.UserProfile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, "stripe_customer_id = ?", sub.CustomerId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		} else if err != nil {
			return err
		}
		if deleted {
			user.StripeSubscriptionStatus = stringPtr(StatusCanceled)
			user.StripeSubscriptionId = nil
			user.StripePriceId = nil
			user.StripeCurrentPeriodEnd = nil
		} else {
			user.StripePriceId = stringPtr(sub.PriceId)
			user.StripeSubscriptionStatus = stringPtr(sub.Status)
			user.StripeCurrentPeriodEnd = int64Ptr(sub.CurrentPeriodEnd)
		}
		return tx.Save(&user).Error
	})
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "fail to save subscription")
	}
	return &user, nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func int64Ptr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}
