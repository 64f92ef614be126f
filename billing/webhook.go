package billing

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

const (
	MetadataUserId = "userId"

	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"

	SignatureHeader = "Stripe-Signature"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// CheckoutCompleted carries what a finished checkout tells about the buyer.
type CheckoutCompleted struct {
	UserId         string
	CustomerId     string
	SubscriptionId string
}

// Event is a verified webhook event. Checkout is set for
// checkout.session.completed, Subscription for the subscription events.
type Event struct {
	Id           string
	Type         string
	Checkout     *CheckoutCompleted
	Subscription *Subscription
}

// ConstructEvent verifies the signature header against secret and decodes
// the payload. Signature failures wrap ErrInvalidSignature.
func ConstructEvent(payload []byte, signature string, secret string) (Event, error) {
	if err := webhook.ValidatePayload(payload, signature, secret); err != nil {
		return Event{}, errors.Wrap(ErrInvalidSignature, err.Error())
	}

	var e stripe.Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, errors.Wrap(err, "fail to decode webhook event")
	}

	res := Event{Id: e.ID, Type: e.Type}
	if e.Data == nil {
		return res, nil
	}

	switch e.Type {
	case EventCheckoutCompleted:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(e.Data.Raw, &s); err != nil {
			return Event{}, errors.Wrap(err, "fail to decode checkout session")
		}
		checkout := &CheckoutCompleted{UserId: s.Metadata[MetadataUserId]}
		if s.Customer != nil {
			checkout.CustomerId = s.Customer.ID
		}
		if s.Subscription != nil {
			checkout.SubscriptionId = s.Subscription.ID
		}
		res.Checkout = checkout
	case EventSubscriptionUpdated, EventSubscriptionDeleted:
		var s stripe.Subscription
		if err := json.Unmarshal(e.Data.Raw, &s); err != nil {
			return Event{}, errors.Wrap(err, "fail to decode subscription")
		}
		sub := fromStripeSubscription(&s)
		res.Subscription = &sub
	}
	return res, nil
}

func IsInvalidSignature(err error) bool {
	return errors.Is(err, ErrInvalidSignature)
}
