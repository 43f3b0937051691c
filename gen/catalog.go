package gen

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Suggestion is a named pairing suggestion.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Pairings holds the viewing pairings of a catalog item.
type Pairings struct {
	Cocktail  *Suggestion `json:"cocktail,omitempty"`
	ZeroProof *Suggestion `json:"zeroProof,omitempty"`
	Snack     *Suggestion `json:"snack,omitempty"`
}

// Item is a catalog item.
type Item struct {
	Id              int64              `json:"id"`
	Title           string             `json:"title"`
	Year            int32              `json:"year,omitempty"`
	Genres          []string           `json:"genres,omitempty"`
	Synopsis        string             `json:"synopsis,omitempty"`
	RuntimeMinutes  int32              `json:"runtimeMinutes,omitempty"`
	ContentRating   string             `json:"contentRating,omitempty"`
	Providers       []string           `json:"providers,omitempty"`
	VoteAverage     float64            `json:"voteAverage,omitempty"`
	VoteCount       int64              `json:"voteCount,omitempty"`
	MoodScores      map[string]float64 `json:"moodScores,omitempty"`
	MoodScoredAt    *time.Time         `json:"moodScoredAt,omitempty"`
	Pairings        *Pairings          `json:"pairings,omitempty"`
	ParentalSummary string             `json:"parentalSummary,omitempty"`
	Advisory        map[string]string  `json:"advisory,omitempty"`
	LlmEnrichedAt   *time.Time         `json:"llmEnrichedAt,omitempty"`
}

type ListCandidatesRequest struct {
	ExcludeIds []int64 `json:"excludeIds,omitempty"`
	Limit      int32   `json:"limit,omitempty"`
}

type ListCandidatesResponse struct {
	Items []*Item `json:"items"`
}

type GetItemsRequest struct {
	Ids []int64 `json:"ids"`
}

type GetItemsResponse struct {
	Items []*Item `json:"items"`
}

type PutItemRequest struct {
	Item *Item `json:"item"`
}

type PutItemResponse struct{}

type RunEnrichmentRequest struct {
	Kind      string `json:"kind"`
	Limit     int32  `json:"limit"`
	BatchSize int32  `json:"batchSize"`
}

type RunEnrichmentResponse struct {
	Enriched  int32 `json:"enriched"`
	Errored   int32 `json:"errored"`
	Skipped   int32 `json:"skipped"`
	Attempted int32 `json:"attempted"`
}

const (
	CatalogService_ListCandidates_FullMethodName = "/cinecircle.CatalogService/ListCandidates"
	CatalogService_GetItems_FullMethodName       = "/cinecircle.CatalogService/GetItems"
	CatalogService_PutItem_FullMethodName        = "/cinecircle.CatalogService/PutItem"
	CatalogService_RunEnrichment_FullMethodName  = "/cinecircle.CatalogService/RunEnrichment"
)

// CatalogServiceServer is the server API for CatalogService.
type CatalogServiceServer interface {
	ListCandidates(context.Context, *ListCandidatesRequest) (*ListCandidatesResponse, error)
	GetItems(context.Context, *GetItemsRequest) (*GetItemsResponse, error)
	PutItem(context.Context, *PutItemRequest) (*PutItemResponse, error)
	RunEnrichment(context.Context, *RunEnrichmentRequest) (*RunEnrichmentResponse, error)
}

// UnimplementedCatalogServiceServer can be embedded to have forward compatible implementations.
type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) ListCandidates(context.Context, *ListCandidatesRequest) (*ListCandidatesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCandidates not implemented")
}

func (UnimplementedCatalogServiceServer) GetItems(context.Context, *GetItemsRequest) (*GetItemsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetItems not implemented")
}

func (UnimplementedCatalogServiceServer) PutItem(context.Context, *PutItemRequest) (*PutItemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PutItem not implemented")
}

func (UnimplementedCatalogServiceServer) RunEnrichment(context.Context, *RunEnrichmentRequest) (*RunEnrichmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RunEnrichment not implemented")
}

// CatalogService_ServiceDesc is the grpc.ServiceDesc for CatalogService.
var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "cinecircle.CatalogService",
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCandidates", Handler: unaryHandler(CatalogService_ListCandidates_FullMethodName, CatalogServiceServer.ListCandidates)},
		{MethodName: "GetItems", Handler: unaryHandler(CatalogService_GetItems_FullMethodName, CatalogServiceServer.GetItems)},
		{MethodName: "PutItem", Handler: unaryHandler(CatalogService_PutItem_FullMethodName, CatalogServiceServer.PutItem)},
		{MethodName: "RunEnrichment", Handler: unaryHandler(CatalogService_RunEnrichment_FullMethodName, CatalogServiceServer.RunEnrichment)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog.json",
}

// RegisterCatalogServiceServer registers srv with s.
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

// CatalogServiceClient is the client API for CatalogService.
type CatalogServiceClient interface {
	ListCandidates(ctx context.Context, in *ListCandidatesRequest, opts ...grpc.CallOption) (*ListCandidatesResponse, error)
	GetItems(ctx context.Context, in *GetItemsRequest, opts ...grpc.CallOption) (*GetItemsResponse, error)
	PutItem(ctx context.Context, in *PutItemRequest, opts ...grpc.CallOption) (*PutItemResponse, error)
	RunEnrichment(ctx context.Context, in *RunEnrichmentRequest, opts ...grpc.CallOption) (*RunEnrichmentResponse, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient creates a CatalogService client.
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc}
}

func (c *catalogServiceClient) ListCandidates(ctx context.Context, in *ListCandidatesRequest, opts ...grpc.CallOption) (*ListCandidatesResponse, error) {
	return invoke[ListCandidatesResponse](ctx, c.cc, CatalogService_ListCandidates_FullMethodName, in, opts)
}

func (c *catalogServiceClient) GetItems(ctx context.Context, in *GetItemsRequest, opts ...grpc.CallOption) (*GetItemsResponse, error) {
	return invoke[GetItemsResponse](ctx, c.cc, CatalogService_GetItems_FullMethodName, in, opts)
}

func (c *catalogServiceClient) PutItem(ctx context.Context, in *PutItemRequest, opts ...grpc.CallOption) (*PutItemResponse, error) {
	return invoke[PutItemResponse](ctx, c.cc, CatalogService_PutItem_FullMethodName, in, opts)
}

func (c *catalogServiceClient) RunEnrichment(ctx context.Context, in *RunEnrichmentRequest, opts ...grpc.CallOption) (*RunEnrichmentResponse, error) {
	return invoke[RunEnrichmentResponse](ctx, c.cc, CatalogService_RunEnrichment_FullMethodName, in, opts)
}
