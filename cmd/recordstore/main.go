// Command recordstore serves the recordstore.v1.RecordStore gRPC service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	recordstorepb "github.com/recordstore-io/recordstore/api/recordstore/v1"
	"github.com/recordstore-io/recordstore/certs"
	"github.com/recordstore-io/recordstore/flags"
	commongrpc "github.com/recordstore-io/recordstore/grpc"
	"github.com/recordstore-io/recordstore/health"
	"github.com/recordstore-io/recordstore/logging"
	"github.com/recordstore-io/recordstore/prometheus"
	"github.com/recordstore-io/recordstore/routine"
	"github.com/recordstore-io/recordstore/service"
	"github.com/recordstore-io/recordstore/store"
)

var opts struct {
	Logging    logging.Opts    `group:"logging" namespace:"logging" env-namespace:"LOGGING"`
	GRPC       commongrpc.Opts `group:"grpc" namespace:"grpc" env-namespace:"GRPC"`
	Prometheus prometheus.Opts `group:"prometheus" namespace:"prometheus" env-namespace:"PROMETHEUS"`
	Certs      certs.Opts      `group:"certs" namespace:"certs" env-namespace:"CERTS"`
	Service    service.Opts    `group:"service" namespace:"service" env-namespace:"SERVICE"`
	Seed       []string        `long:"seed" env:"SEED" env-delim:";" description:"Seed record as 'name,contact,age'. Repeatable."`
}

func main() {
	flags.MustParse(&opts)
	if err := logging.Init(&opts.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "initializing logging: %v\n", err)
		os.Exit(1)
	}
	log := slog.Default()

	seeds, err := parseSeeds(opts.Seed)
	if err != nil {
		log.Error("parsing seed records", "error", err)
		os.Exit(1)
	}
	recordStore := store.New()
	recordStore.Seed(seeds...)
	if len(seeds) > 0 {
		log.Info("seeded store", "records", len(seeds))
	}

	recordService := service.New(&opts.Service, recordStore).WithLogger(log)
	server, err := commongrpc.NewServer(&opts.GRPC, &opts.Certs, &opts.Prometheus, recordService.Register)
	if err != nil {
		log.Error("instantiating gRPC server", "error", err)
		os.Exit(1)
	}
	server.WithLogger(log).WithHealthCheck(health.CombineChecks(recordService.HealthCheck, recordStore.HealthCheck))

	ctx := context.Background()
	prometheusServer := prometheus.NewServer(&opts.Prometheus).WithLogger(log)
	go prometheusServer.Start(ctx)
	defer prometheusServer.Stop(ctx)

	statsRoutine := routine.New("store-stats", func(ctx context.Context) error {
		if err := recordStore.HealthCheck(ctx); err != nil {
			return err
		}
		log.InfoContext(ctx, "store stats", "records", recordStore.Len())
		return nil
	}).WithLogger(log).
		WithInterval(30 * time.Second).
		WithConstantBackOff(5 * time.Second).
		WithMaxConsecutiveErrors(10).
		WithErrorCounter("recordstore_store_stats_errors_total").
		Start(ctx)
	defer statsRoutine.Close()

	if err := server.Serve(ctx); err != nil {
		log.Error("gRPC server exited", "error", err)
		os.Exit(1)
	}
}

// parseSeeds parses 'name,contact,age' triples, accumulating all errors so a
// bad invocation reports every faulty flag at once.
func parseSeeds(seeds []string) ([]*recordstorepb.CreateRecordRequest, error) {
	var result *multierror.Error
	requests := make([]*recordstorepb.CreateRecordRequest, 0, len(seeds))
	for _, seed := range seeds {
		parts := strings.Split(seed, ",")
		if len(parts) != 3 {
			result = multierror.Append(result, fmt.Errorf("seed %q: want 'name,contact,age'", seed))
			continue
		}
		age, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 32)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("seed %q: parsing age: %w", seed, err))
			continue
		}
		requests = append(requests, &recordstorepb.CreateRecordRequest{
			Name:    strings.TrimSpace(parts[0]),
			Contact: strings.TrimSpace(parts[1]),
			Age:     int32(age),
		})
	}
	return requests, result.ErrorOrNil()
}
