package gen

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type RecommendRequest struct {
	CollectiveId       string            `json:"collectiveId"`
	UserId             string            `json:"userId"`
	Moods              []string          `json:"moods,omitempty"`
	Audience           string            `json:"audience,omitempty"`
	MaxRuntimeMinutes  int32             `json:"maxRuntimeMinutes,omitempty"`
	ContentRatingLimit string            `json:"contentRatingLimit,omitempty"`
	MinYear            int32             `json:"minYear,omitempty"`
	Providers          []string          `json:"providers,omitempty"`
	ParentalCeilings   map[string]string `json:"parentalCeilings,omitempty"`
	Page               int32             `json:"page,omitempty"`
	ExcludeIds         []int64           `json:"excludeIds,omitempty"`
}

type Recommendation struct {
	Item          *Item    `json:"item"`
	GroupFitScore int32    `json:"groupFitScore"`
	Reasoning     string   `json:"reasoning"`
	SeenBy        []string `json:"seenBy,omitempty"`
}

type RecommendResponse struct {
	Recommendations []*Recommendation `json:"recommendations"`
	ExcludeIds      []int64           `json:"excludeIds"`
	NextPage        int32             `json:"nextPage"`
	Empty           bool              `json:"empty,omitempty"`
	Message         string            `json:"message,omitempty"`
}

type DismissRequest struct {
	UserId string `json:"userId"`
	ItemId int64  `json:"itemId"`
	Token  string `json:"token"`
}

type DismissResponse struct {
	UndoDeadline time.Time `json:"undoDeadline"`
}

type UndoDismissRequest struct {
	UserId string `json:"userId"`
	ItemId int64  `json:"itemId"`
	Token  string `json:"token"`
}

type UndoDismissResponse struct{}

// Member is a collective member.
type Member struct {
	UserId      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// Collective is a named group whose members' ratings form a shared taste profile.
type Collective struct {
	Id      string    `json:"id"`
	Name    string    `json:"name"`
	Members []*Member `json:"members"`
}

type PutCollectiveRequest struct {
	Collective *Collective `json:"collective"`
}

type PutCollectiveResponse struct{}

const (
	RecommendationService_Recommend_FullMethodName     = "/cinecircle.RecommendationService/Recommend"
	RecommendationService_Dismiss_FullMethodName       = "/cinecircle.RecommendationService/Dismiss"
	RecommendationService_UndoDismiss_FullMethodName   = "/cinecircle.RecommendationService/UndoDismiss"
	RecommendationService_PutCollective_FullMethodName = "/cinecircle.RecommendationService/PutCollective"
)

// RecommendationServiceServer is the server API for RecommendationService.
type RecommendationServiceServer interface {
	Recommend(context.Context, *RecommendRequest) (*RecommendResponse, error)
	Dismiss(context.Context, *DismissRequest) (*DismissResponse, error)
	UndoDismiss(context.Context, *UndoDismissRequest) (*UndoDismissResponse, error)
	PutCollective(context.Context, *PutCollectiveRequest) (*PutCollectiveResponse, error)
}

// UnimplementedRecommendationServiceServer can be embedded to have forward compatible implementations.
type UnimplementedRecommendationServiceServer struct{}

func (UnimplementedRecommendationServiceServer) Recommend(context.Context, *RecommendRequest) (*RecommendResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Recommend not implemented")
}

func (UnimplementedRecommendationServiceServer) Dismiss(context.Context, *DismissRequest) (*DismissResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Dismiss not implemented")
}

func (UnimplementedRecommendationServiceServer) UndoDismiss(context.Context, *UndoDismissRequest) (*UndoDismissResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UndoDismiss not implemented")
}

func (UnimplementedRecommendationServiceServer) PutCollective(context.Context, *PutCollectiveRequest) (*PutCollectiveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PutCollective not implemented")
}

// RecommendationService_ServiceDesc is the grpc.ServiceDesc for RecommendationService.
var RecommendationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "cinecircle.RecommendationService",
	HandlerType: (*RecommendationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Recommend", Handler: unaryHandler(RecommendationService_Recommend_FullMethodName, RecommendationServiceServer.Recommend)},
		{MethodName: "Dismiss", Handler: unaryHandler(RecommendationService_Dismiss_FullMethodName, RecommendationServiceServer.Dismiss)},
		{MethodName: "UndoDismiss", Handler: unaryHandler(RecommendationService_UndoDismiss_FullMethodName, RecommendationServiceServer.UndoDismiss)},
		{MethodName: "PutCollective", Handler: unaryHandler(RecommendationService_PutCollective_FullMethodName, RecommendationServiceServer.PutCollective)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recommendation.json",
}

// RegisterRecommendationServiceServer registers srv with s.
func RegisterRecommendationServiceServer(s grpc.ServiceRegistrar, srv RecommendationServiceServer) {
	s.RegisterService(&RecommendationService_ServiceDesc, srv)
}

// RecommendationServiceClient is the client API for RecommendationService.
type RecommendationServiceClient interface {
	Recommend(ctx context.Context, in *RecommendRequest, opts ...grpc.CallOption) (*RecommendResponse, error)
	Dismiss(ctx context.Context, in *DismissRequest, opts ...grpc.CallOption) (*DismissResponse, error)
	UndoDismiss(ctx context.Context, in *UndoDismissRequest, opts ...grpc.CallOption) (*UndoDismissResponse, error)
	PutCollective(ctx context.Context, in *PutCollectiveRequest, opts ...grpc.CallOption) (*PutCollectiveResponse, error)
}

type recommendationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRecommendationServiceClient creates a RecommendationService client.
func NewRecommendationServiceClient(cc grpc.ClientConnInterface) RecommendationServiceClient {
	return &recommendationServiceClient{cc}
}

func (c *recommendationServiceClient) Recommend(ctx context.Context, in *RecommendRequest, opts ...grpc.CallOption) (*RecommendResponse, error) {
	return invoke[RecommendResponse](ctx, c.cc, RecommendationService_Recommend_FullMethodName, in, opts)
}

func (c *recommendationServiceClient) Dismiss(ctx context.Context, in *DismissRequest, opts ...grpc.CallOption) (*DismissResponse, error) {
	return invoke[DismissResponse](ctx, c.cc, RecommendationService_Dismiss_FullMethodName, in, opts)
}

func (c *recommendationServiceClient) UndoDismiss(ctx context.Context, in *UndoDismissRequest, opts ...grpc.CallOption) (*UndoDismissResponse, error) {
	return invoke[UndoDismissResponse](ctx, c.cc, RecommendationService_UndoDismiss_FullMethodName, in, opts)
}

func (c *recommendationServiceClient) PutCollective(ctx context.Context, in *PutCollectiveRequest, opts ...grpc.CallOption) (*PutCollectiveResponse, error) {
	return invoke[PutCollectiveResponse](ctx, c.cc, RecommendationService_PutCollective_FullMethodName, in, opts)
}
