package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/logging"
	"github.com/dmitrijs2005/mindkeeper/internal/server/changes"
	"github.com/dmitrijs2005/mindkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/services"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type checkinSvc interface {
	LogMood(ctx context.Context, userID string, mood models.MoodCategory, note *string) (*models.MoodLog, error)
	SubmitQuestionnaire(ctx context.Context, userID string, t models.InstrumentType, answers map[string]int) (*models.QuestionnaireResult, error)
}

type preferencesSvc interface {
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
	Update(ctx context.Context, p *models.UserPreferences) (*models.UserPreferences, error)
}

type journalSvc interface {
	Add(ctx context.Context, userID string, title *string, body string) (*models.JournalEntry, error)
	List(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error)
}

type breathingSvc interface {
	Pattern() []models.BreathingPhase
	Record(ctx context.Context, userID string, cycles int) (*models.BreathingSession, error)
	Recent(ctx context.Context, userID string, limit int) ([]*models.BreathingSession, error)
}

type dashboardSvc interface {
	Build(ctx context.Context, userID string) (*models.Dashboard, error)
}

type exportSvc interface {
	Export(ctx context.Context, userID string) (*services.ExportResult, error)
}

type subscriber interface {
	Subscribe(userID string) *changes.Subscription
}

// Services bundles the business logic the transport delegates to.
type Services struct {
	Users       userSvc
	Checkins    checkinSvc
	Preferences preferencesSvc
	Journal     journalSvc
	Breathing   breathingSvc
	Dashboards  dashboardSvc
	Exports     exportSvc
	Changes     subscriber
}

type GRPCServer struct {
	address    string
	users      userSvc
	checkins   checkinSvc
	prefs      preferencesSvc
	journal    journalSvc
	breathing  breathingSvc
	dashboards dashboardSvc
	exports    exportSvc
	changes    subscriber
	metrics    *metrics.Metrics
	logger     logging.Logger
	jwtSecret  []byte
	now        timex.Clock
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		users:      svc.Users,
		checkins:   svc.Checkins,
		prefs:      svc.Preferences,
		journal:    svc.Journal,
		breathing:  svc.Breathing,
		dashboards: svc.Dashboards,
		exports:    svc.Exports,
		changes:    svc.Changes,
		metrics:    m,
		jwtSecret:  []byte(secretKey),
		now:        time.Now,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamMetricsInterceptor, s.streamAccessTokenInterceptor),
	)
	api.RegisterWellnessServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
