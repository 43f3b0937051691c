package model

import (
	ratingmodel "cinecircle/rating/pkg/model"
)

// CollectiveID defines a collective id.
type CollectiveID string

// Member defines a collective member.
type Member struct {
	UserID      ratingmodel.UserID `json:"userId"`
	DisplayName string             `json:"displayName"`
}

// Name returns the display name, or the user id when none is set.
func (m Member) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return string(m.UserID)
}

// Collective defines a named group whose members share recommendations.
type Collective struct {
	ID      CollectiveID `json:"id"`
	Name    string       `json:"name"`
	Members []Member     `json:"members"`
}

// MemberIDs returns the members' user ids in membership order.
func (c *Collective) MemberIDs() []ratingmodel.UserID {
	ids := make([]ratingmodel.UserID, 0, len(c.Members))
	for _, m := range c.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// HasMember reports whether userID belongs to the collective.
func (c *Collective) HasMember(userID ratingmodel.UserID) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
