package model

import "time"

/*

UserProfile is the site profile of a signed-in user, keyed by the identity
provider's uid.

Role: "reader" on sign up, promoted to "author" or "admin" by hand

Stripe* fields are written by the billing webhook only:
StripeCustomerId: payment provider customer, used to find the user on
		subscription updates
StripeSubscriptionStatus: "active", "trialing", "past_due", "canceled", "unpaid"
StripeCurrentPeriodEnd: unix seconds
*/
type UserProfile struct {
	Uid                      string    `json:"uid" gorm:"primaryKey;column:uid"`
	FirstName                string    `json:"firstName"`
	LastName                 string    `json:"lastName"`
	Role                     string    `json:"role"`
	CreatedAt                time.Time `json:"createdAt"`
	StripeCustomerId         *string   `json:"stripeCustomerId,omitempty" gorm:"index"`
	StripeSubscriptionId     *string   `json:"stripeSubscriptionId,omitempty"`
	StripePriceId            *string   `json:"stripePriceId,omitempty"`
	StripeSubscriptionStatus *string   `json:"stripeSubscriptionStatus,omitempty"`
	StripeCurrentPeriodEnd   *int64    `json:"stripeCurrentPeriodEnd,omitempty"`
}

func (UserProfile) TableName() string {
	return "users"
}

// IsEditor reports whether the user may write content.
func (u UserProfile) IsEditor() bool {
	return u.Role == RoleAuthor || u.Role == RoleAdmin
}

// IsSubscribed mirrors what the site treats as a paying reader.
func (u UserProfile) IsSubscribed() bool {
	if u.StripeSubscriptionStatus == nil {
		return false
	}
	s := *u.StripeSubscriptionStatus
	return s == "active" || s == "trialing"
}
