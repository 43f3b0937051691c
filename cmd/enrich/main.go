// Command enrich triggers a one-shot enrichment run on the catalog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cinecircle/gen"
	"cinecircle/internal/grpcutil"

	"github.com/urfave/cli/v3"
	"google.golang.org/grpc"
)

var errInvalidKind = errors.New(`kind must be "mood", "advisory" or "all"`)

func main() {
	app := &cli.Command{
		Name:  "enrich",
		Usage: "Run catalog enrichment pipelines once",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   "localhost:8081",
				Usage:   "catalog service address",
				Sources: cli.EnvVars("CATALOG_ADDR"),
			},
			&cli.StringFlag{
				Name:  "kind",
				Value: "all",
				Usage: "pipeline to run: mood, advisory or all",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 50,
				Usage: "maximum number of items to enrich per pipeline",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Value: 10,
				Usage: "items per model call (capped at 15)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Minute,
				Usage: "overall deadline for the run",
			},
			&cli.StringFlag{
				Name:    "cert",
				Usage:   "TLS certificate file",
				Sources: cli.EnvVars("CATALOG_TLS_CERT"),
			},
			&cli.StringFlag{
				Name:    "key",
				Usage:   "TLS key file",
				Sources: cli.EnvVars("CATALOG_TLS_KEY"),
			},
		},
		Action: runEnrich,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runEnrich(ctx context.Context, cmd *cli.Command) error {
	kinds, err := parseKinds(cmd.String("kind"))
	if err != nil {
		return err
	}
	creds, err := grpcutil.TransportCredentials(cmd.String("cert"), cmd.String("key"))
	if err != nil {
		return err
	}
	conn, err := grpc.NewClient(cmd.String("addr"), grpc.WithTransportCredentials(creds))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()
	return enrich(ctx, gen.NewCatalogServiceClient(conn), kinds, cmd.Int("limit"), cmd.Int("batch-size"), os.Stdout)
}

func parseKinds(kind string) ([]string, error) {
	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case "all":
		return []string{"mood", "advisory"}, nil
	case "mood", "advisory":
		return []string{k}, nil
	}
	return nil, errInvalidKind
}

func enrich(ctx context.Context, client gen.CatalogServiceClient, kinds []string, limit int, batchSize int, w io.Writer) error {
	for _, kind := range kinds {
		resp, err := client.RunEnrichment(ctx, &gen.RunEnrichmentRequest{
			Kind:      kind,
			Limit:     int32(limit),
			BatchSize: int32(batchSize),
		})
		if err != nil {
			return fmt.Errorf("%s enrichment: %w", kind, err)
		}
		fmt.Fprintf(w, "%s: enriched=%d errored=%d skipped=%d attempted=%d\n",
			kind, resp.Enriched, resp.Errored, resp.Skipped, resp.Attempted)
	}
	return nil
}
