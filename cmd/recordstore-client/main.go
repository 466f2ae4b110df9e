// Command recordstore-client is an example driver exercising every call
// pattern of the RecordStore service against a running server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	recordstorepb "github.com/recordstore-io/recordstore/api/recordstore/v1"
	commongrpc "github.com/recordstore-io/recordstore/grpc"
)

var (
	host     = flag.String("host", "localhost", "Server host")
	port     = flag.Int("port", 9090, "Server port")
	id       = flag.Int64("id", 0, "Record id (get)")
	name     = flag.String("name", "", "Record name (create)")
	contact  = flag.String("contact", "", "Record contact (create)")
	age      = flag.Int("age", 0, "Record age (create)")
	batch    = flag.String("batch", "", "Semicolon-separated 'name,contact,age' triples (batch, chat)")
	useStdin = flag.Bool("stdin", false, "Read 'name,contact,age' lines from stdin instead of -batch")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: recordstore-client [flags] get|create|list|batch|chat")
}

func run() error {
	if flag.NArg() != 1 {
		return usage()
	}
	ctx := context.Background()

	opts := &commongrpc.Opts{
		Host:       *host,
		Port:       *port,
		DisableTLS: true,
	}
	connection, err := commongrpc.NewConnection(opts, nil, nil)
	if err != nil {
		return fmt.Errorf("creating connection: %w", err)
	}
	if err := connection.Connect(); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer connection.Close()

	client := recordstorepb.NewRecordStoreClient(connection.Get())

	switch flag.Arg(0) {
	case "get":
		return runGet(ctx, client)
	case "create":
		return runCreate(ctx, client)
	case "list":
		return runList(ctx, client)
	case "batch":
		return runBatch(ctx, client)
	case "chat":
		return runChat(ctx, client)
	default:
		return usage()
	}
}

func runGet(ctx context.Context, client recordstorepb.RecordStoreClient) error {
	record, err := client.GetRecord(ctx, &recordstorepb.GetRecordRequest{Id: *id})
	if err != nil {
		return err
	}
	printRecord(record)
	return nil
}

func runCreate(ctx context.Context, client recordstorepb.RecordStoreClient) error {
	record, err := client.CreateRecord(ctx, &recordstorepb.CreateRecordRequest{
		Name:    *name,
		Contact: *contact,
		Age:     int32(*age),
	})
	if err != nil {
		return err
	}
	printRecord(record)
	return nil
}

func runList(ctx context.Context, client recordstorepb.RecordStoreClient) error {
	stream, err := client.ListRecords(ctx, &recordstorepb.ListRecordsRequest{})
	if err != nil {
		return err
	}
	for {
		record, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		printRecord(record)
	}
}

func runBatch(ctx context.Context, client recordstorepb.RecordStoreClient) error {
	requests, err := collectRequests()
	if err != nil {
		return err
	}
	stream, err := client.BatchCreateRecords(ctx)
	if err != nil {
		return err
	}
	for _, request := range requests {
		if err := stream.Send(request); err != nil {
			return err
		}
	}
	response, err := stream.CloseAndRecv()
	if err != nil {
		return err
	}
	fmt.Printf("created %d records\n", response.CreatedCount)
	for _, record := range response.Records {
		printRecord(record)
	}
	return nil
}

func runChat(ctx context.Context, client recordstorepb.RecordStoreClient) error {
	requests, err := collectRequests()
	if err != nil {
		return err
	}
	stream, err := client.StreamCreateRecords(ctx)
	if err != nil {
		return err
	}
	for _, request := range requests {
		if err := stream.Send(request); err != nil {
			return err
		}
		record, err := stream.Recv()
		if err != nil {
			return err
		}
		printRecord(record)
	}
	return stream.CloseSend()
}

func collectRequests() ([]*recordstorepb.CreateRecordRequest, error) {
	var triples []string
	if *useStdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				triples = append(triples, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	} else {
		for _, triple := range strings.Split(*batch, ";") {
			if triple = strings.TrimSpace(triple); triple != "" {
				triples = append(triples, triple)
			}
		}
	}

	requests := make([]*recordstorepb.CreateRecordRequest, 0, len(triples))
	for _, triple := range triples {
		parts := strings.Split(triple, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("request %q: want 'name,contact,age'", triple)
		}
		var age int32
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[2]), "%d", &age); err != nil {
			return nil, fmt.Errorf("request %q: parsing age: %w", triple, err)
		}
		requests = append(requests, &recordstorepb.CreateRecordRequest{
			Name:    strings.TrimSpace(parts[0]),
			Contact: strings.TrimSpace(parts[1]),
			Age:     age,
		})
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no requests given, use -batch or -stdin")
	}
	return requests, nil
}

func printRecord(record *recordstorepb.Record) {
	fmt.Printf("#%d %s <%s> age=%d created=%s\n", record.Id, record.Name, record.Contact, record.Age, record.CreatedAt)
}
