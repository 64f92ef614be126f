package billing

import (
	"context"
	"fmt"
	"sync"
)

// FakeProvider answers from memory and records what it was asked.
type FakeProvider struct {
	mu            sync.Mutex
	Subscriptions map[string]Subscription
	Checkouts     []string
	Portals       []string
	Err           error
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{Subscriptions: map[string]Subscription{}}
}

func (f *FakeProvider) CreateCheckoutSession(ctx context.Context, priceId string, userId string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.Checkouts = append(f.Checkouts, priceId+"/"+userId)
	return fmt.Sprintf("https://checkout.test/%s/%s", priceId, userId), nil
}

func (f *FakeProvider) CreatePortalSession(ctx context.Context, customerId string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.Portals = append(f.Portals, customerId)
	return "https://portal.test/" + customerId, nil
}

func (f *FakeProvider) GetSubscription(ctx context.Context, subscriptionId string) (Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return Subscription{}, f.Err
	}
	s, ok := f.Subscriptions[subscriptionId]
	if !ok {
		return Subscription{}, fmt.Errorf("no such subscription: %s", subscriptionId)
	}
	return s, nil
}
