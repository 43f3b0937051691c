package model

import (
	"fmt"
	"time"
)

// UserID defines a user id.
type UserID string

// ItemID defines a rated catalog item id.
type ItemID int64

// Rating defines a user's rating of a catalog item. A user has at most
// one rating per item.
type Rating struct {
	UserID       UserID             `json:"userId"`
	ItemID       ItemID             `json:"itemId"`
	OverallScore int                `json:"overallScore"`
	Dimensions   map[string]float64 `json:"dimensions,omitempty"`
	RatedAt      time.Time          `json:"ratedAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func (r *Rating) String() string {
	return fmt.Sprintf("Rating{userId=%s, itemId=%d, overall=%d}", r.UserID, r.ItemID, r.OverallScore)
}

// RatingEvent defines an event containing rating information.
type RatingEvent struct {
	UserID       UserID             `json:"userId"`
	ItemID       ItemID             `json:"itemId"`
	OverallScore *int               `json:"overallScore,omitempty"`
	Dimensions   map[string]float64 `json:"dimensions,omitempty"`
	ProviderID   string             `json:"providerId"`
	EventType    RatingEventType    `json:"eventType"`
}

func (ev *RatingEvent) String() string {
	return fmt.Sprintf("RatingEvent{userId=%s, itemId=%d, providerId=%s, eventType=%s}", ev.UserID, ev.ItemID, ev.ProviderID, ev.EventType)
}

// RatingEventType defines the type of rating event.
type RatingEventType string

// Rating event types.
const (
	RatingEventTypePut    = RatingEventType("put")
	RatingEventTypeDelete = RatingEventType("delete")
)
