// Package billing talks to the payment provider: checkout and portal
// sessions, subscription lookups and signed webhook events.
package billing

import "context"

// Subscription is the part of a provider subscription mirrored on the user
// profile.
type Subscription struct {
	Id               string
	CustomerId       string
	PriceId          string
	Status           string
	CurrentPeriodEnd int64
}

type Provider interface {
	// CreateCheckoutSession starts a subscription checkout for userId and
	// returns the hosted page url.
	CreateCheckoutSession(ctx context.Context, priceId string, userId string) (string, error)
	// CreatePortalSession returns the customer portal url.
	CreatePortalSession(ctx context.Context, customerId string) (string, error)
	GetSubscription(ctx context.Context, subscriptionId string) (Subscription, error)
}
