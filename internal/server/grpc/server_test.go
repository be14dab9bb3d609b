package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/logging"
	"github.com/dmitrijs2005/mindkeeper/internal/server/auth"
	"github.com/dmitrijs2005/mindkeeper/internal/server/changes"
	"github.com/dmitrijs2005/mindkeeper/internal/server/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, Services{}, "secret", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, Services{}, "secret", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves s over an in-memory listener and returns a client.
func startBufconn(t *testing.T, s *GRPCServer) *api.WellnessServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Serve(ctx, lis)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return api.NewWellnessServiceClient(conn)
}

func authed(t *testing.T, ctx context.Context, userID string) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte("k"), time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)
}

func TestEndToEnd_AuthAndMetrics(t *testing.T) {
	f := newFakes()
	s := newServer(f)
	reg := prometheus.NewRegistry()
	s.metrics = metrics.MustNewMetrics(reg)
	c := startBufconn(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.Ping(ctx, &api.PingRequest{})
	require.NoError(t, err)

	_, err = c.GetDashboard(ctx, &api.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	d, err := c.GetDashboard(authed(t, ctx, "u1"), &api.Empty{})
	require.NoError(t, err)
	assert.Equal(t, 50, d.Snapshot.Focus)

	n, err := testutil.GatherAndCount(reg, "mindkeeper_grpc_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEndToEnd_WatchDashboard(t *testing.T) {
	f := newFakes()
	s := newServer(f)
	c := startBufconn(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := c.WatchDashboard(authed(t, ctx, "u1"), &api.Empty{})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Snapshot.Mood)

	// someone else's change is not delivered
	f.broker.Publish(changes.Event{UserID: "u2", Table: changes.TableMoodLogs})
	f.broker.Publish(changes.Event{UserID: "u1", Table: changes.TableMoodLogs})

	second, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Snapshot.Mood)

	cancel()
	_, err = stream.Recv()
	assert.Error(t, err)

	require.Eventually(t, func() bool { return f.broker.Subscribers("u1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEndToEnd_WatchDashboardRequiresToken(t *testing.T) {
	c := startBufconn(t, newServer(newFakes()))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := c.WatchDashboard(ctx, &api.Empty{})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
