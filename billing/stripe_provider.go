package billing

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

const checkoutSessionPlaceholder = "{CHECKOUT_SESSION_ID}"

type StripeProvider struct {
	api         *client.API
	frontendUrl string
}

func NewStripeProvider(secretKey string, frontendUrl string) *StripeProvider {
	return &StripeProvider{
		api:         client.New(secretKey, nil),
		frontendUrl: strings.TrimSuffix(frontendUrl, "/"),
	}
}

func (p *StripeProvider) SuccessUrl() string {
	return p.frontendUrl + "/success?session_id=" + checkoutSessionPlaceholder
}

func (p *StripeProvider) CancelUrl() string {
	return p.frontendUrl + "/cancel"
}

func (p *StripeProvider) PortalReturnUrl() string {
	return p.frontendUrl + "/profile"
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, priceId string, userId string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceId),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessUrl()),
		CancelURL:  stripe.String(p.CancelUrl()),
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserId, userId)

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return "", errors.Wrap(err, "fail to create checkout session")
	}
	return s.URL, nil
}

func (p *StripeProvider) CreatePortalSession(ctx context.Context, customerId string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerId),
		ReturnURL: stripe.String(p.PortalReturnUrl()),
	}
	params.Context = ctx

	s, err := p.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", errors.Wrap(err, "fail to create portal session")
	}
	return s.URL, nil
}

func (p *StripeProvider) GetSubscription(ctx context.Context, subscriptionId string) (Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	s, err := p.api.Subscriptions.Get(subscriptionId, params)
	if err != nil {
		return Subscription{}, errors.Wrapf(err, "fail to get subscription %s", subscriptionId)
	}
	return fromStripeSubscription(s), nil
}

func fromStripeSubscription(s *stripe.Subscription) Subscription {
	res := Subscription{
		Id:               s.ID,
		Status:           string(s.Status),
		CurrentPeriodEnd: s.CurrentPeriodEnd,
	}
	if s.Customer != nil {
		res.CustomerId = s.Customer.ID
	}
	if s.Items != nil && len(s.Items.Data) > 0 && s.Items.Data[0].Price != nil {
		res.PriceId = s.Items.Data[0].Price.ID
	}
	return res
}
