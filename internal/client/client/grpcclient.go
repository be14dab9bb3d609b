package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// wellnessAPI is the subset of api.WellnessServiceClient used here.
type wellnessAPI interface {
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
	Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.RegisterResponse, error)
	Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.TokenPair, error)
	RefreshToken(ctx context.Context, in *api.RefreshTokenRequest, opts ...grpc.CallOption) (*api.TokenPair, error)
	Logout(ctx context.Context, in *api.LogoutRequest, opts ...grpc.CallOption) (*api.Empty, error)
	ListInstruments(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.ListInstrumentsResponse, error)
	LogMood(ctx context.Context, in *api.LogMoodRequest, opts ...grpc.CallOption) (*api.MoodLog, error)
	SubmitQuestionnaire(ctx context.Context, in *api.SubmitQuestionnaireRequest, opts ...grpc.CallOption) (*api.QuestionnaireResult, error)
	GetDashboard(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.Dashboard, error)
	WatchDashboard(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (api.WatchDashboardClient, error)
	GetPreferences(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.Preferences, error)
	UpdatePreferences(ctx context.Context, in *api.Preferences, opts ...grpc.CallOption) (*api.Preferences, error)
	AddJournalEntry(ctx context.Context, in *api.AddJournalEntryRequest, opts ...grpc.CallOption) (*api.JournalEntry, error)
	ListJournalEntries(ctx context.Context, in *api.ListRequest, opts ...grpc.CallOption) (*api.ListJournalEntriesResponse, error)
	GetBreathingPattern(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.BreathingPattern, error)
	RecordBreathing(ctx context.Context, in *api.RecordBreathingRequest, opts ...grpc.CallOption) (*api.BreathingSession, error)
	ListBreathingSessions(ctx context.Context, in *api.ListRequest, opts ...grpc.CallOption) (*api.ListBreathingSessionsResponse, error)
	ExportData(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.ExportDataResponse, error)
}

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      wellnessAPI

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onRefresh    func(access, refresh string)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

// refresh exchanges the stored refresh token for a new pair.
func (s *GRPCClient) refresh(ctx context.Context) error {
	_, refreshToken := s.Tokens()
	if refreshToken == "" {
		return ErrUnauthorized
	}

	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	fn := s.onRefresh
	s.mu.Unlock()

	if fn != nil {
		fn(resp.AccessToken, resp.RefreshToken)
	}
	return nil
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	accessToken, _ := s.Tokens()

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	if refreshErr := s.refresh(ctx); refreshErr != nil {
		if errors.Is(refreshErr, ErrUnauthorized) {
			return err
		}
		return refreshErr
	}

	accessToken, _ = s.Tokens()
	return invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
}

func (s *GRPCClient) streamAccessTokenInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	accessToken, _ := s.Tokens()
	return streamer(withAccessToken(ctx, accessToken), desc, cc, method, opts...)
}

func NewWellnessClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewWellnessServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) OnTokensRefreshed(fn func(access, refresh string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, userName string, password []byte) error {
	_, err := s.client.Register(ctx, &api.RegisterRequest{Username: userName, Password: string(password)})
	return s.mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, userName string, password []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: userName, Password: string(password)})
	if err != nil {
		return s.mapError(err)
	}

	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout revokes the refresh token on the server and forgets the local pair.
// The local pair is dropped even when the server cannot be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refreshToken := s.Tokens()
	s.SetTokens("", "")
	if refreshToken == "" {
		return nil
	}
	_, err := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: refreshToken})
	return s.mapError(err)
}

func (s *GRPCClient) ListInstruments(ctx context.Context) ([]api.Instrument, error) {
	resp, err := s.client.ListInstruments(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Instruments, nil
}

func (s *GRPCClient) LogMood(ctx context.Context, mood string, note *string) (*api.MoodLog, error) {
	resp, err := s.client.LogMood(ctx, &api.LogMoodRequest{Mood: mood, Note: note})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) SubmitQuestionnaire(ctx context.Context, kind string, answers map[string]int) (*api.QuestionnaireResult, error) {
	resp, err := s.client.SubmitQuestionnaire(ctx, &api.SubmitQuestionnaireRequest{Type: kind, Answers: answers})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetDashboard(ctx context.Context) (*api.Dashboard, error) {
	resp, err := s.client.GetDashboard(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// WatchDashboard opens the server stream and hands every dashboard to fn.
// An expired access token on the first receive triggers one refresh and a
// reconnect. It returns nil when ctx ends the stream.
func (s *GRPCClient) WatchDashboard(ctx context.Context, fn func(*api.Dashboard)) error {
	refreshed := false
	for {
		stream, err := s.client.WatchDashboard(ctx, &api.Empty{})
		if err != nil {
			return s.streamError(ctx, err)
		}

		received := false
		for {
			d, err := stream.Recv()
			if err != nil {
				if !received && !refreshed && isTokenExpired(err) {
					if rerr := s.refresh(ctx); rerr != nil {
						return s.mapError(err)
					}
					refreshed = true
					break
				}
				return s.streamError(ctx, err)
			}
			received = true
			if ctx.Err() != nil {
				return nil
			}
			fn(d)
		}
	}
}

func (s *GRPCClient) streamError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
		return nil
	}
	return s.mapError(err)
}

func (s *GRPCClient) GetPreferences(ctx context.Context) (*api.Preferences, error) {
	resp, err := s.client.GetPreferences(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdatePreferences(ctx context.Context, p *api.Preferences) (*api.Preferences, error) {
	resp, err := s.client.UpdatePreferences(ctx, p)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AddJournalEntry(ctx context.Context, title *string, body string) (*api.JournalEntry, error) {
	resp, err := s.client.AddJournalEntry(ctx, &api.AddJournalEntryRequest{Title: title, Body: body})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListJournalEntries(ctx context.Context, limit int) ([]api.JournalEntry, error) {
	resp, err := s.client.ListJournalEntries(ctx, &api.ListRequest{Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) GetBreathingPattern(ctx context.Context) (*api.BreathingPattern, error) {
	resp, err := s.client.GetBreathingPattern(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) RecordBreathing(ctx context.Context, cycles int) (*api.BreathingSession, error) {
	resp, err := s.client.RecordBreathing(ctx, &api.RecordBreathingRequest{Cycles: cycles})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListBreathingSessions(ctx context.Context, limit int) ([]api.BreathingSession, error) {
	resp, err := s.client.ListBreathingSessions(ctx, &api.ListRequest{Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Sessions, nil
}

func (s *GRPCClient) ExportData(ctx context.Context) (*api.ExportDataResponse, error) {
	resp, err := s.client.ExportData(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
