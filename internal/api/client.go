package api

import (
	"context"

	"google.golang.org/grpc"
)

// WellnessServiceClient is a typed client for mindkeeper.WellnessService.
// Every call is sent with the JSON content-subtype.
type WellnessServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWellnessServiceClient(cc grpc.ClientConnInterface) *WellnessServiceClient {
	return &WellnessServiceClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WellnessServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *WellnessServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *WellnessServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, MethodLogin, in, opts)
}

func (c *WellnessServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *WellnessServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *WellnessServiceClient) ListInstruments(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListInstrumentsResponse, error) {
	return invoke[ListInstrumentsResponse](ctx, c.cc, MethodListInstruments, in, opts)
}

func (c *WellnessServiceClient) LogMood(ctx context.Context, in *LogMoodRequest, opts ...grpc.CallOption) (*MoodLog, error) {
	return invoke[MoodLog](ctx, c.cc, MethodLogMood, in, opts)
}

func (c *WellnessServiceClient) SubmitQuestionnaire(ctx context.Context, in *SubmitQuestionnaireRequest, opts ...grpc.CallOption) (*QuestionnaireResult, error) {
	return invoke[QuestionnaireResult](ctx, c.cc, MethodSubmitQuestionnaire, in, opts)
}

func (c *WellnessServiceClient) GetDashboard(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Dashboard, error) {
	return invoke[Dashboard](ctx, c.cc, MethodGetDashboard, in, opts)
}

func (c *WellnessServiceClient) GetPreferences(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Preferences, error) {
	return invoke[Preferences](ctx, c.cc, MethodGetPreferences, in, opts)
}

func (c *WellnessServiceClient) UpdatePreferences(ctx context.Context, in *Preferences, opts ...grpc.CallOption) (*Preferences, error) {
	return invoke[Preferences](ctx, c.cc, MethodUpdatePreferences, in, opts)
}

func (c *WellnessServiceClient) AddJournalEntry(ctx context.Context, in *AddJournalEntryRequest, opts ...grpc.CallOption) (*JournalEntry, error) {
	return invoke[JournalEntry](ctx, c.cc, MethodAddJournalEntry, in, opts)
}

func (c *WellnessServiceClient) ListJournalEntries(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListJournalEntriesResponse, error) {
	return invoke[ListJournalEntriesResponse](ctx, c.cc, MethodListJournalEntries, in, opts)
}

func (c *WellnessServiceClient) GetBreathingPattern(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BreathingPattern, error) {
	return invoke[BreathingPattern](ctx, c.cc, MethodGetBreathingPattern, in, opts)
}

func (c *WellnessServiceClient) RecordBreathing(ctx context.Context, in *RecordBreathingRequest, opts ...grpc.CallOption) (*BreathingSession, error) {
	return invoke[BreathingSession](ctx, c.cc, MethodRecordBreathing, in, opts)
}

func (c *WellnessServiceClient) ListBreathingSessions(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListBreathingSessionsResponse, error) {
	return invoke[ListBreathingSessionsResponse](ctx, c.cc, MethodListBreathingSessions, in, opts)
}

func (c *WellnessServiceClient) ExportData(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ExportDataResponse, error) {
	return invoke[ExportDataResponse](ctx, c.cc, MethodExportData, in, opts)
}

// WatchDashboardClient receives dashboards pushed by the server.
type WatchDashboardClient interface {
	Recv() (*Dashboard, error)
	grpc.ClientStream
}

type watchDashboardClient struct {
	grpc.ClientStream
}

func (x *watchDashboardClient) Recv() (*Dashboard, error) {
	m := new(Dashboard)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *WellnessServiceClient) WatchDashboard(ctx context.Context, in *Empty, opts ...grpc.CallOption) (WatchDashboardClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], MethodWatchDashboard, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &watchDashboardClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
