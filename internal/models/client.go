package models

import "time"

// ClientType distinguishes personal credit-repair clients from business
// funding clients.
type ClientType string

const (
	ClientTypePersonal ClientType = "personal"
	ClientTypeBusiness ClientType = "business"
)

// AffiliateNone is the sentinel for "no referring affiliate".
const AffiliateNone = "none"

// ClientRecord is the persisted identity of one client. Storage and
// lifecycle rules belong to the store; the orchestrator only creates and
// looks these up by email.
type ClientRecord struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Phone         string     `json:"phone,omitempty"`
	Type          ClientType `json:"type"`
	AffiliateID   string     `json:"affiliateId,omitempty"`
	IdentityID    string     `json:"identityId,omitempty"`
	UnlockedTools []string   `json:"unlockedTools,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FullName joins the name parts the way the CRM expects contacts named.
func (c *ClientRecord) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// HasAffiliate reports whether a referring affiliate should be notified.
func (c *ClientRecord) HasAffiliate() bool {
	return c.AffiliateID != "" && c.AffiliateID != AffiliateNone
}
