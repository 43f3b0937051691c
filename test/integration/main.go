package main

import (
	"context"
	"net"
	"time"

	catalogtest "cinecircle/catalog/pkg/testutil"
	"cinecircle/gen"
	"cinecircle/pkg/auth"
	"cinecircle/pkg/discovery"
	"cinecircle/pkg/discovery/memory"
	"cinecircle/rating/pkg/model"
	ratingtest "cinecircle/rating/pkg/testutil"
	recommendationtest "cinecircle/recommendation/pkg/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const (
	catalogServiceName        = "catalog"
	ratingServiceName         = "rating"
	recommendationServiceName = "recommendation"

	catalogServiceAddress        = "localhost:8081"
	ratingServiceAddress         = "localhost:8082"
	recommendationServiceAddress = "localhost:8083"
)

var log *zap.Logger

func main() {
	var err error
	if log, err = zap.NewDevelopment(); err != nil {
		panic(err)
	}
	log.Info("Starting the integration test")

	ctx := context.Background()
	registry := memory.NewRegistry()
	verifier := auth.NewVerifier(func() []byte { return []byte("integration-secret") })

	log.Info("Setting up service handlers and clients")
	catalogSrv := startService(ctx, registry, catalogServiceName, catalogServiceAddress, func(s *grpc.Server) {
		gen.RegisterCatalogServiceServer(s, catalogtest.NewTestCatalogGRPCServer())
	})
	defer catalogSrv.GracefulStop()
	ratingSrv := startService(ctx, registry, ratingServiceName, ratingServiceAddress, func(s *grpc.Server) {
		gen.RegisterRatingServiceServer(s, ratingtest.NewTestRatingGRPCServer(verifier, model.Dimensions{
			{Name: "story", Min: 1, Max: 5, Step: 0.5, Weight: 1},
		}))
	})
	defer ratingSrv.GracefulStop()
	recommendationSrv := startService(ctx, registry, recommendationServiceName, recommendationServiceAddress, func(s *grpc.Server) {
		gen.RegisterRecommendationServiceServer(s, recommendationtest.NewTestRecommendationGRPCServer(registry, verifier))
	})
	defer recommendationSrv.GracefulStop()

	catalogClient := gen.NewCatalogServiceClient(dial(catalogServiceAddress))
	ratingClient := gen.NewRatingServiceClient(dial(ratingServiceAddress))
	recommendationClient := gen.NewRecommendationServiceClient(dial(recommendationServiceAddress))

	log.Info("Saving catalog items via catalog service")
	items := []*gen.Item{
		{Id: 1, Title: "Paddington 2", Year: 2017, Genres: []string{"Comedy", "Family"}, ContentRating: "PG", VoteAverage: 7.8, VoteCount: 900},
		{Id: 2, Title: "Heat", Year: 1995, Genres: []string{"Crime", "Thriller"}, ContentRating: "R", VoteAverage: 8.3, VoteCount: 2000},
		{Id: 3, Title: "The Lego Movie", Year: 2014, Genres: []string{"Comedy", "Animation"}, ContentRating: "PG", VoteAverage: 7.4, VoteCount: 1200},
		{Id: 4, Title: "Toy Story", Year: 1995, Genres: []string{"Animation", "Family"}, ContentRating: "G", VoteAverage: 8.0, VoteCount: 3000},
		{Id: 5, Title: "Up", Year: 2009, Genres: []string{"Animation", "Family"}, ContentRating: "PG", VoteAverage: 8.0, VoteCount: 2500},
	}
	for _, item := range items {
		if _, err := catalogClient.PutItem(ctx, &gen.PutItemRequest{Item: item}); err != nil {
			log.Fatal("put item", zap.Error(err))
		}
	}
	getItemsResp, err := catalogClient.GetItems(ctx, &gen.GetItemsRequest{Ids: []int64{1}})
	if err != nil {
		log.Fatal("get items", zap.Error(err))
	}
	if diff := cmp.Diff(items[:1], getItemsResp.Items, cmpopts.EquateEmpty()); diff != "" {
		log.Fatal("get items after put mismatch", zap.String("diff", diff))
	}

	log.Info("Saving ratings via rating service")
	tokens := map[string]string{}
	for _, user := range []string{"ann", "ben"} {
		tok, err := verifier.Issue(user, time.Hour)
		if err != nil {
			log.Fatal("issue token", zap.Error(err))
		}
		tokens[user] = tok
	}
	for _, r := range []struct {
		user  string
		item  int64
		score int32
	}{
		{"ann", 1, 90}, {"ann", 2, 40},
		{"ben", 1, 80}, {"ben", 2, 60},
	} {
		score := r.score
		if _, err := ratingClient.PutRating(ctx, &gen.PutRatingRequest{UserId: r.user, ItemId: r.item, OverallScore: &score, Token: tokens[r.user]}); err != nil {
			log.Fatal("put rating", zap.Error(err))
		}
	}
	if _, err := ratingClient.PutRating(ctx, &gen.PutRatingRequest{UserId: "ann", ItemId: 3, Dimensions: map[string]float64{"story": 4}, Token: tokens["ben"]}); status.Code(err) != codes.Unauthenticated {
		log.Fatal("put rating with another user's token", zap.Error(err))
	}

	log.Info("Checking taste compatibility via rating service")
	compat, err := ratingClient.GetCompatibility(ctx, &gen.GetCompatibilityRequest{UserIds: []string{"ann", "ben"}})
	if err != nil {
		log.Fatal("get compatibility", zap.Error(err))
	}
	for _, m := range compat.Members {
		if m.Aggregate == nil || *m.Aggregate != 85 {
			log.Fatal("compatibility mismatch", zap.String("user", m.UserId), zap.Any("aggregate", m.Aggregate))
		}
	}

	log.Info("Creating a collective via recommendation service")
	if _, err := recommendationClient.PutCollective(ctx, &gen.PutCollectiveRequest{Collective: &gen.Collective{
		Id: "friday", Name: "Friday club", Members: []*gen.Member{{UserId: "ann", DisplayName: "Ann"}, {UserId: "ben", DisplayName: "Ben"}},
	}}); err != nil {
		log.Fatal("put collective", zap.Error(err))
	}

	log.Info("Getting family recommendations via recommendation service")
	req := &gen.RecommendRequest{CollectiveId: "friday", UserId: "ann", Audience: "family"}
	first, err := recommendationClient.Recommend(ctx, req)
	if err != nil {
		log.Fatal("recommend", zap.Error(err))
	}
	if first.Empty || len(first.Recommendations) != 4 {
		log.Fatal("unexpected recommendation count", zap.Int("count", len(first.Recommendations)))
	}
	for _, rec := range first.Recommendations {
		if rec.Item.Id == 2 {
			log.Fatal("R-rated item recommended to a family audience")
		}
		if rec.Reasoning == "" {
			log.Fatal("recommendation without reasoning", zap.Int64("item", rec.Item.Id))
		}
		if rec.Item.Id == 1 && !cmp.Equal(rec.SeenBy, []string{"Ann", "Ben"}) {
			log.Fatal("seen by mismatch", zap.Strings("seenBy", rec.SeenBy))
		}
	}

	log.Info("Shuffling past every candidate")
	req.ExcludeIds = first.ExcludeIds
	req.Page = first.NextPage
	second, err := recommendationClient.Recommend(ctx, req)
	if err != nil {
		log.Fatal("recommend next page", zap.Error(err))
	}
	if !second.Empty || second.Message == "" {
		log.Fatal("expected an empty result once every candidate was shown")
	}

	log.Info("Dismissing and undoing via recommendation service")
	if _, err := recommendationClient.Dismiss(ctx, &gen.DismissRequest{UserId: "ann", ItemId: 4, Token: tokens["ann"]}); err != nil {
		log.Fatal("dismiss", zap.Error(err))
	}
	afterDismiss, err := recommendationClient.Recommend(ctx, &gen.RecommendRequest{UserId: "ann"})
	if err != nil {
		log.Fatal("recommend after dismiss", zap.Error(err))
	}
	for _, rec := range afterDismiss.Recommendations {
		if rec.Item.Id == 4 {
			log.Fatal("dismissed item recommended")
		}
	}
	if _, err := recommendationClient.UndoDismiss(ctx, &gen.UndoDismissRequest{UserId: "ann", ItemId: 4, Token: tokens["ann"]}); err != nil {
		log.Fatal("undo dismiss", zap.Error(err))
	}
	if _, err := recommendationClient.UndoDismiss(ctx, &gen.UndoDismissRequest{UserId: "ann", ItemId: 4, Token: tokens["ann"]}); status.Code(err) != codes.FailedPrecondition {
		log.Fatal("second undo", zap.Error(err))
	}

	log.Info("Integration test execution successful")
}

func dial(addr string) *grpc.ClientConn {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("dial", zap.String("addr", addr), zap.Error(err))
	}
	return conn
}

func startService(ctx context.Context, registry discovery.Registry, name, addr string, register func(*grpc.Server)) *grpc.Server {
	log.Info("Starting service", zap.String("service", name), zap.String("addr", addr))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("failed to listen", zap.Error(err))
	}
	srv := grpc.NewServer()
	register(srv)
	id := discovery.GenerateInstanceID(name)
	if err := registry.Register(ctx, id, name, addr); err != nil {
		panic(err)
	}
	go func() {
		defer func() {
			if err := registry.Deregister(ctx, id, name); err != nil {
				log.Warn("Failed to deregister", zap.String("service", name), zap.Error(err))
			}
		}()
		if err := srv.Serve(l); err != nil {
			panic(err)
		}
	}()
	go func() {
		for {
			if err := registry.ReportHealthyState(id, name); err != nil {
				log.Warn("Failed to report healthy state", zap.Error(err))
			}
			time.Sleep(1 * time.Second)
		}
	}()
	return srv
}
