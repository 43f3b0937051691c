package model

import "cinecircle/gen"

// RatingToProto converts a Rating struct into a generated wire counterpart.
func RatingToProto(r *Rating) *gen.Rating {
	return &gen.Rating{
		UserId:       string(r.UserID),
		ItemId:       int64(r.ItemID),
		OverallScore: int32(r.OverallScore),
		Dimensions:   r.Dimensions,
		RatedAt:      r.RatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// RatingFromProto converts a generated wire rating into a Rating struct.
func RatingFromProto(r *gen.Rating) *Rating {
	return &Rating{
		UserID:       UserID(r.UserId),
		ItemID:       ItemID(r.ItemId),
		OverallScore: int(r.OverallScore),
		Dimensions:   r.Dimensions,
		RatedAt:      r.RatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
