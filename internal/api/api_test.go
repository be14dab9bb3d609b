package api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	score := 42
	in := &Dashboard{Snapshot: Snapshot{Mood: 88}, Phone: PhoneDependence{Enabled: true, Score: &score, Tier: "Moderate"}}
	b, err := c.Marshal(in)
	require.NoError(t, err)

	var out Dashboard
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, 88, out.Snapshot.Mood)
	require.NotNil(t, out.Phone.Score)
	assert.Equal(t, 42, *out.Phone.Score)
}

func TestWithCodec_SelectsJSONSubtype(t *testing.T) {
	extra := grpc.WaitForReady(true)
	opts := withCodec([]grpc.CallOption{extra})
	require.Len(t, opts, 2)

	sub, ok := opts[0].(grpc.ContentSubtypeCallOption)
	require.True(t, ok)
	assert.Equal(t, CodecName, sub.ContentSubtype)
	assert.Equal(t, extra, opts[1])
}

// stubServer implements only what the test exercises; other methods panic
// through the nil embedded interface.
type stubServer struct {
	WellnessServiceServer
}

func (stubServer) Ping(ctx context.Context, _ *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (stubServer) Login(ctx context.Context, in *LoginRequest) (*TokenPair, error) {
	if in.Password != "secret" {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return &TokenPair{AccessToken: "a-" + in.Username, RefreshToken: "r"}, nil
}

func (stubServer) WatchDashboard(_ *Empty, stream WatchDashboardServer) error {
	for i := 1; i <= 3; i++ {
		if err := stream.Send(&Dashboard{Snapshot: Snapshot{Mood: i}}); err != nil {
			return err
		}
	}
	return nil
}

func dialStub(t *testing.T) *WellnessServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterWellnessServiceServer(srv, stubServer{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewWellnessServiceClient(conn)
}

func TestClient_Unary(t *testing.T) {
	c := dialStub(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := c.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	pair, err := c.Login(ctx, &LoginRequest{Username: "ann", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "a-ann", pair.AccessToken)

	_, err = c.Login(ctx, &LoginRequest{Username: "ann", Password: "nope"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestClient_WatchDashboard(t *testing.T) {
	c := dialStub(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := c.WatchDashboard(ctx, &Empty{})
	require.NoError(t, err)

	var moods []int
	for {
		d, err := stream.Recv()
		if err != nil {
			break
		}
		moods = append(moods, d.Snapshot.Mood)
	}
	assert.Equal(t, []int{1, 2, 3}, moods)
}
