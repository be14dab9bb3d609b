package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "mindkeeper.WellnessService"

// Full method names as seen by interceptors.
const (
	MethodPing                  = "/" + ServiceName + "/Ping"
	MethodRegister              = "/" + ServiceName + "/Register"
	MethodLogin                 = "/" + ServiceName + "/Login"
	MethodRefreshToken          = "/" + ServiceName + "/RefreshToken"
	MethodLogout                = "/" + ServiceName + "/Logout"
	MethodListInstruments       = "/" + ServiceName + "/ListInstruments"
	MethodLogMood               = "/" + ServiceName + "/LogMood"
	MethodSubmitQuestionnaire   = "/" + ServiceName + "/SubmitQuestionnaire"
	MethodGetDashboard          = "/" + ServiceName + "/GetDashboard"
	MethodWatchDashboard        = "/" + ServiceName + "/WatchDashboard"
	MethodGetPreferences        = "/" + ServiceName + "/GetPreferences"
	MethodUpdatePreferences     = "/" + ServiceName + "/UpdatePreferences"
	MethodAddJournalEntry       = "/" + ServiceName + "/AddJournalEntry"
	MethodListJournalEntries    = "/" + ServiceName + "/ListJournalEntries"
	MethodGetBreathingPattern   = "/" + ServiceName + "/GetBreathingPattern"
	MethodRecordBreathing       = "/" + ServiceName + "/RecordBreathing"
	MethodListBreathingSessions = "/" + ServiceName + "/ListBreathingSessions"
	MethodExportData            = "/" + ServiceName + "/ExportData"
)

// WellnessServiceServer is implemented by the server transport.
type WellnessServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenPair, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenPair, error)
	Logout(context.Context, *LogoutRequest) (*Empty, error)
	ListInstruments(context.Context, *Empty) (*ListInstrumentsResponse, error)
	LogMood(context.Context, *LogMoodRequest) (*MoodLog, error)
	SubmitQuestionnaire(context.Context, *SubmitQuestionnaireRequest) (*QuestionnaireResult, error)
	GetDashboard(context.Context, *Empty) (*Dashboard, error)
	WatchDashboard(*Empty, WatchDashboardServer) error
	GetPreferences(context.Context, *Empty) (*Preferences, error)
	UpdatePreferences(context.Context, *Preferences) (*Preferences, error)
	AddJournalEntry(context.Context, *AddJournalEntryRequest) (*JournalEntry, error)
	ListJournalEntries(context.Context, *ListRequest) (*ListJournalEntriesResponse, error)
	GetBreathingPattern(context.Context, *Empty) (*BreathingPattern, error)
	RecordBreathing(context.Context, *RecordBreathingRequest) (*BreathingSession, error)
	ListBreathingSessions(context.Context, *ListRequest) (*ListBreathingSessionsResponse, error)
	ExportData(context.Context, *Empty) (*ExportDataResponse, error)
}

// WatchDashboardServer is the server side of the WatchDashboard stream.
type WatchDashboardServer interface {
	Send(*Dashboard) error
	grpc.ServerStream
}

type watchDashboardServer struct {
	grpc.ServerStream
}

func (x *watchDashboardServer) Send(d *Dashboard) error {
	return x.ServerStream.SendMsg(d)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(WellnessServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WellnessServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(WellnessServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchDashboardHandler(srv any, stream grpc.ServerStream) error {
	in := new(Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(WellnessServiceServer).WatchDashboard(in, &watchDashboardServer{stream})
}

// ServiceDesc describes mindkeeper.WellnessService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WellnessServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, WellnessServiceServer.Ping)},
		{MethodName: "Register", Handler: unary(MethodRegister, WellnessServiceServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, WellnessServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, WellnessServiceServer.RefreshToken)},
		{MethodName: "Logout", Handler: unary(MethodLogout, WellnessServiceServer.Logout)},
		{MethodName: "ListInstruments", Handler: unary(MethodListInstruments, WellnessServiceServer.ListInstruments)},
		{MethodName: "LogMood", Handler: unary(MethodLogMood, WellnessServiceServer.LogMood)},
		{MethodName: "SubmitQuestionnaire", Handler: unary(MethodSubmitQuestionnaire, WellnessServiceServer.SubmitQuestionnaire)},
		{MethodName: "GetDashboard", Handler: unary(MethodGetDashboard, WellnessServiceServer.GetDashboard)},
		{MethodName: "GetPreferences", Handler: unary(MethodGetPreferences, WellnessServiceServer.GetPreferences)},
		{MethodName: "UpdatePreferences", Handler: unary(MethodUpdatePreferences, WellnessServiceServer.UpdatePreferences)},
		{MethodName: "AddJournalEntry", Handler: unary(MethodAddJournalEntry, WellnessServiceServer.AddJournalEntry)},
		{MethodName: "ListJournalEntries", Handler: unary(MethodListJournalEntries, WellnessServiceServer.ListJournalEntries)},
		{MethodName: "GetBreathingPattern", Handler: unary(MethodGetBreathingPattern, WellnessServiceServer.GetBreathingPattern)},
		{MethodName: "RecordBreathing", Handler: unary(MethodRecordBreathing, WellnessServiceServer.RecordBreathing)},
		{MethodName: "ListBreathingSessions", Handler: unary(MethodListBreathingSessions, WellnessServiceServer.ListBreathingSessions)},
		{MethodName: "ExportData", Handler: unary(MethodExportData, WellnessServiceServer.ExportData)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchDashboard", Handler: watchDashboardHandler, ServerStreams: true},
	},
}

func RegisterWellnessServiceServer(s grpc.ServiceRegistrar, srv WellnessServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
