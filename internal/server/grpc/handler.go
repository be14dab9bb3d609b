package grpc

import (
	"context"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/instruments"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRegister, err)
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName)
	return &api.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenPair, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodLogin, err)
	}
	return &api.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenPair, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRefreshToken, err)
	}
	return &api.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.Empty, error) {
	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, api.MethodLogout, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ListInstruments(ctx context.Context, _ *api.Empty) (*api.ListInstrumentsResponse, error) {
	resp := &api.ListInstrumentsResponse{}
	for _, in := range instruments.All() {
		resp.Instruments = append(resp.Instruments, toAPIInstrument(in))
	}
	return resp, nil
}

func (s *GRPCServer) LogMood(ctx context.Context, req *api.LogMoodRequest) (*api.MoodLog, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	log, err := s.checkins.LogMood(ctx, userID, models.MoodCategory(req.Mood), req.Note)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodLogMood, err)
	}
	return toAPIMoodLog(log), nil
}

func (s *GRPCServer) SubmitQuestionnaire(ctx context.Context, req *api.SubmitQuestionnaireRequest) (*api.QuestionnaireResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	result, err := s.checkins.SubmitQuestionnaire(ctx, userID, models.InstrumentType(req.Type), req.Answers)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodSubmitQuestionnaire, err)
	}
	return toAPIResult(result), nil
}

func (s *GRPCServer) GetDashboard(ctx context.Context, _ *api.Empty) (*api.Dashboard, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.dashboards.Build(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetDashboard, err)
	}
	s.metrics.ObserveDashboard(d.Degraded)
	return toAPIDashboard(d, s.now()), nil
}

// WatchDashboard pushes the current dashboard, then a rebuilt one after every
// change to the caller's records, until the stream's context ends.
func (s *GRPCServer) WatchDashboard(_ *api.Empty, stream api.WatchDashboardServer) error {
	ctx := stream.Context()
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	// Subscribe before the first build so a write racing it is not lost.
	sub := s.changes.Subscribe(userID)
	defer sub.Close()

	s.metrics.WatcherStarted()
	defer s.metrics.WatcherStopped()

	s.logger.Debug(ctx, "dashboard watch started", "user_id", userID)

	if err := s.pushDashboard(ctx, stream, userID); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug(ctx, "dashboard watch finished", "user_id", userID)
			return nil
		case ev := <-sub.C:
			s.metrics.ObserveChange(string(ev.Table))
			if err := s.pushDashboard(ctx, stream, userID); err != nil {
				return err
			}
		}
	}
}

func (s *GRPCServer) pushDashboard(ctx context.Context, stream api.WatchDashboardServer, userID string) error {
	d, err := s.dashboards.Build(ctx, userID)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return s.toStatus(ctx, api.MethodWatchDashboard, err)
	}
	s.metrics.ObserveDashboard(d.Degraded)
	return stream.Send(toAPIDashboard(d, s.now()))
}

func (s *GRPCServer) GetPreferences(ctx context.Context, _ *api.Empty) (*api.Preferences, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetPreferences, err)
	}
	return toAPIPreferences(p), nil
}

func (s *GRPCServer) UpdatePreferences(ctx context.Context, req *api.Preferences) (*api.Preferences, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.prefs.Update(ctx, fromAPIPreferences(userID, req))
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdatePreferences, err)
	}
	return toAPIPreferences(p), nil
}

func (s *GRPCServer) AddJournalEntry(ctx context.Context, req *api.AddJournalEntryRequest) (*api.JournalEntry, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.journal.Add(ctx, userID, req.Title, req.Body)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodAddJournalEntry, err)
	}
	out := toAPIJournalEntry(e)
	return &out, nil
}

func (s *GRPCServer) ListJournalEntries(ctx context.Context, req *api.ListRequest) (*api.ListJournalEntriesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.journal.List(ctx, userID, req.Limit)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListJournalEntries, err)
	}
	resp := &api.ListJournalEntriesResponse{Entries: make([]api.JournalEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toAPIJournalEntry(e))
	}
	return resp, nil
}

func (s *GRPCServer) GetBreathingPattern(ctx context.Context, _ *api.Empty) (*api.BreathingPattern, error) {
	resp := &api.BreathingPattern{}
	for _, p := range s.breathing.Pattern() {
		secs := int(p.Duration.Seconds())
		resp.Phases = append(resp.Phases, api.BreathingPhase{Name: p.Name, Label: p.Label, Seconds: secs})
		resp.CycleSeconds += secs
	}
	return resp, nil
}

func (s *GRPCServer) RecordBreathing(ctx context.Context, req *api.RecordBreathingRequest) (*api.BreathingSession, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	session, err := s.breathing.Record(ctx, userID, req.Cycles)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRecordBreathing, err)
	}
	out := toAPIBreathingSession(session)
	return &out, nil
}

func (s *GRPCServer) ListBreathingSessions(ctx context.Context, req *api.ListRequest) (*api.ListBreathingSessionsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.breathing.Recent(ctx, userID, req.Limit)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListBreathingSessions, err)
	}
	resp := &api.ListBreathingSessionsResponse{Sessions: make([]api.BreathingSession, 0, len(sessions))}
	for _, b := range sessions {
		resp.Sessions = append(resp.Sessions, toAPIBreathingSession(b))
	}
	return resp, nil
}

func (s *GRPCServer) ExportData(ctx context.Context, _ *api.Empty) (*api.ExportDataResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.exports.Export(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodExportData, err)
	}
	s.logger.Info(ctx, "export created", "user_id", userID, "key", res.Key)
	return &api.ExportDataResponse{Key: res.Key, URL: res.URL, ExpiresAt: res.ExpiresAt}, nil
}
