package gen

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Rating is a user's rating of a catalog item.
type Rating struct {
	UserId       string             `json:"userId"`
	ItemId       int64              `json:"itemId"`
	OverallScore int32              `json:"overallScore"`
	Dimensions   map[string]float64 `json:"dimensions,omitempty"`
	RatedAt      time.Time          `json:"ratedAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type PutRatingRequest struct {
	UserId string `json:"userId"`
	ItemId int64  `json:"itemId"`
	// OverallScore is derived from Dimensions when nil.
	OverallScore *int32             `json:"overallScore,omitempty"`
	Dimensions   map[string]float64 `json:"dimensions,omitempty"`
	Token        string             `json:"token"`
}

type PutRatingResponse struct {
	Rating *Rating `json:"rating"`
}

type DeleteRatingRequest struct {
	UserId string `json:"userId"`
	ItemId int64  `json:"itemId"`
	Token  string `json:"token"`
}

type DeleteRatingResponse struct{}

type GetRatingsRequest struct {
	UserIds []string `json:"userIds"`
}

type GetRatingsResponse struct {
	Ratings []*Rating `json:"ratings"`
}

// Pairing is the similarity of one member to another. A nil Similarity
// means the two members share no rated items.
type Pairing struct {
	UserId      string   `json:"userId"`
	Similarity  *float64 `json:"similarity"`
	SharedCount int32    `json:"sharedCount"`
}

// MemberCompatibility is a member's aggregate compatibility and ranked pairings.
type MemberCompatibility struct {
	UserId    string     `json:"userId"`
	Aggregate *float64   `json:"aggregate"`
	Pairings  []*Pairing `json:"pairings"`
}

type GetCompatibilityRequest struct {
	UserIds []string `json:"userIds"`
}

type GetCompatibilityResponse struct {
	Members []*MemberCompatibility `json:"members"`
}

const (
	RatingService_PutRating_FullMethodName        = "/cinecircle.RatingService/PutRating"
	RatingService_DeleteRating_FullMethodName     = "/cinecircle.RatingService/DeleteRating"
	RatingService_GetRatings_FullMethodName       = "/cinecircle.RatingService/GetRatings"
	RatingService_GetCompatibility_FullMethodName = "/cinecircle.RatingService/GetCompatibility"
)

// RatingServiceServer is the server API for RatingService.
type RatingServiceServer interface {
	PutRating(context.Context, *PutRatingRequest) (*PutRatingResponse, error)
	DeleteRating(context.Context, *DeleteRatingRequest) (*DeleteRatingResponse, error)
	GetRatings(context.Context, *GetRatingsRequest) (*GetRatingsResponse, error)
	GetCompatibility(context.Context, *GetCompatibilityRequest) (*GetCompatibilityResponse, error)
}

// UnimplementedRatingServiceServer can be embedded to have forward compatible implementations.
type UnimplementedRatingServiceServer struct{}

func (UnimplementedRatingServiceServer) PutRating(context.Context, *PutRatingRequest) (*PutRatingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PutRating not implemented")
}

func (UnimplementedRatingServiceServer) DeleteRating(context.Context, *DeleteRatingRequest) (*DeleteRatingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteRating not implemented")
}

func (UnimplementedRatingServiceServer) GetRatings(context.Context, *GetRatingsRequest) (*GetRatingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRatings not implemented")
}

func (UnimplementedRatingServiceServer) GetCompatibility(context.Context, *GetCompatibilityRequest) (*GetCompatibilityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCompatibility not implemented")
}

// RatingService_ServiceDesc is the grpc.ServiceDesc for RatingService.
var RatingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "cinecircle.RatingService",
	HandlerType: (*RatingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PutRating", Handler: unaryHandler(RatingService_PutRating_FullMethodName, RatingServiceServer.PutRating)},
		{MethodName: "DeleteRating", Handler: unaryHandler(RatingService_DeleteRating_FullMethodName, RatingServiceServer.DeleteRating)},
		{MethodName: "GetRatings", Handler: unaryHandler(RatingService_GetRatings_FullMethodName, RatingServiceServer.GetRatings)},
		{MethodName: "GetCompatibility", Handler: unaryHandler(RatingService_GetCompatibility_FullMethodName, RatingServiceServer.GetCompatibility)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rating.json",
}

// RegisterRatingServiceServer registers srv with s.
func RegisterRatingServiceServer(s grpc.ServiceRegistrar, srv RatingServiceServer) {
	s.RegisterService(&RatingService_ServiceDesc, srv)
}

// RatingServiceClient is the client API for RatingService.
type RatingServiceClient interface {
	PutRating(ctx context.Context, in *PutRatingRequest, opts ...grpc.CallOption) (*PutRatingResponse, error)
	DeleteRating(ctx context.Context, in *DeleteRatingRequest, opts ...grpc.CallOption) (*DeleteRatingResponse, error)
	GetRatings(ctx context.Context, in *GetRatingsRequest, opts ...grpc.CallOption) (*GetRatingsResponse, error)
	GetCompatibility(ctx context.Context, in *GetCompatibilityRequest, opts ...grpc.CallOption) (*GetCompatibilityResponse, error)
}

type ratingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRatingServiceClient creates a RatingService client.
func NewRatingServiceClient(cc grpc.ClientConnInterface) RatingServiceClient {
	return &ratingServiceClient{cc}
}

func (c *ratingServiceClient) PutRating(ctx context.Context, in *PutRatingRequest, opts ...grpc.CallOption) (*PutRatingResponse, error) {
	return invoke[PutRatingResponse](ctx, c.cc, RatingService_PutRating_FullMethodName, in, opts)
}

func (c *ratingServiceClient) DeleteRating(ctx context.Context, in *DeleteRatingRequest, opts ...grpc.CallOption) (*DeleteRatingResponse, error) {
	return invoke[DeleteRatingResponse](ctx, c.cc, RatingService_DeleteRating_FullMethodName, in, opts)
}

func (c *ratingServiceClient) GetRatings(ctx context.Context, in *GetRatingsRequest, opts ...grpc.CallOption) (*GetRatingsResponse, error) {
	return invoke[GetRatingsResponse](ctx, c.cc, RatingService_GetRatings_FullMethodName, in, opts)
}

func (c *ratingServiceClient) GetCompatibility(ctx context.Context, in *GetCompatibilityRequest, opts ...grpc.CallOption) (*GetCompatibilityResponse, error) {
	return invoke[GetCompatibilityResponse](ctx, c.cc, RatingService_GetCompatibility_FullMethodName, in, opts)
}
