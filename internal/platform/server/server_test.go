package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ogurasousui/dwrecords/internal/adapters/grpc/records"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func startBufconnServer(t *testing.T) (*grpc.ClientConn, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	srv := New("bufnet", zap.New(core), Dependencies{
		Clock: fixedClock{now: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
	})

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})

	return conn, logs
}

func TestServer_EmploymentComputeRoundTrip(t *testing.T) {
	t.Parallel()

	conn, logs := startBufconnServer(t)

	req, err := structpb.NewStruct(map[string]any{
		"start_date":     "2024-01-01",
		"status":         "terminated",
		"effective_date": "2024-02-15",
	})
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	var header metadata.MD
	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDHeader, "req-123")
	resp, err := records.Invoke(ctx, conn, records.EmploymentServiceName, "Compute", req, grpc.Header(&header))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if got := resp.GetFields()["actual_days_worked"].GetNumberValue(); got != 45 {
		t.Errorf("expected actual_days_worked 45, got %v", got)
	}
	if got := header.Get(RequestIDHeader); len(got) != 1 || got[0] != "req-123" {
		t.Errorf("expected request id to be echoed, got %v", got)
	}

	entries := logs.FilterField(zap.String("request_id", "req-123")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry for request, got %d", len(entries))
	}
	if entries[0].ContextMap()["method"] != "/records.v1.EmploymentService/Compute" {
		t.Errorf("unexpected method field: %v", entries[0].ContextMap()["method"])
	}
}

func TestServer_InvalidArgumentIsLoggedAsWarning(t *testing.T) {
	t.Parallel()

	conn, logs := startBufconnServer(t)

	req, _ := structpb.NewStruct(map[string]any{"start_date": "not-a-date"})
	_, err := records.Invoke(context.Background(), conn, records.EmploymentServiceName, "Compute", req)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
	if id, _ := warnings[0].ContextMap()["request_id"].(string); id == "" {
		t.Errorf("expected generated request id")
	}
}

func TestServer_HealthReportsServing(t *testing.T) {
	t.Parallel()

	conn, _ := startBufconnServer(t)
	client := healthpb.NewHealthClient(conn)

	for _, service := range []string{"", records.AgencyServiceName, records.WorkerServiceName, records.EmploymentServiceName} {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("health check %q returned error: %v", service, err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("expected %q to be SERVING, got %s", service, resp.GetStatus())
		}
	}
}

func TestServer_UnknownMethod(t *testing.T) {
	t.Parallel()

	conn, _ := startBufconnServer(t)

	_, err := records.Invoke(context.Background(), conn, records.EmploymentServiceName, "Nope", &structpb.Struct{})
	if status.Code(err) != codes.Unimplemented {
		t.Fatalf("expected Unimplemented, got %v", err)
	}
}

func TestUnaryLogging_PropagatesRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	interceptor := UnaryLogging(zap.New(core))
	info := &grpc.UnaryServerInfo{FullMethod: records.FullMethod(records.EmploymentServiceName, "Compute")}

	var seen string
	handler := func(ctx context.Context, _ any) (any, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, " req-456 "))
	if _, err := interceptor(ctx, nil, info, handler); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if seen != "req-456" {
		t.Fatalf("handler request id = %q, want req-456", seen)
	}

	if _, err := interceptor(context.Background(), nil, info, handler); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if seen == "" || seen == "req-456" {
		t.Fatalf("expected a generated request id, got %q", seen)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if got := entries[1].ContextMap()["request_id"]; got != seen {
		t.Fatalf("logged request_id = %v, want %q", got, seen)
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}
