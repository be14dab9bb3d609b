package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	sc "github.com/dmitrijs2005/mindkeeper/internal/server/config"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ExportLinkValidity is how long a presigned download link stays usable.
const ExportLinkValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportDocument is the JSON file a user downloads.
type ExportDocument struct {
	UserID             string                        `json:"user_id"`
	GeneratedAt        time.Time                     `json:"generated_at"`
	Preferences        *models.UserPreferences       `json:"preferences"`
	MoodLogs           []*models.MoodLog             `json:"mood_logs"`
	QuestionnaireItems []*models.QuestionnaireResult `json:"questionnaire_results"`
	JournalEntries     []*models.JournalEntry        `json:"journal_entries"`
	BreathingSessions  []*models.BreathingSession    `json:"breathing_sessions"`
}

type ExportResult struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

// ExportService writes a user's complete history to object storage and
// hands back a short-lived download link.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         timex.Clock
}

func NewExportService(db *sql.DB, rm repomanager.RepositoryManager, cfg *sc.Config) *ExportService {
	return &ExportService{db: db, repomanager: rm, config: cfg, now: time.Now}
}

func exportKey(userID string, at time.Time) string {
	return fmt.Sprintf("exports/%s/%s-%s.json", userID, at.UTC().Format("20060102T150405Z"), uuid.NewString())
}

func (s *ExportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Collect gathers every record owned by userID.
func (s *ExportService) Collect(ctx context.Context, userID string) (*ExportDocument, error) {
	doc := &ExportDocument{UserID: userID, GeneratedAt: s.now().UTC()}
	var err error

	doc.Preferences, err = s.repomanager.Preferences(s.db).Get(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		doc.Preferences = models.DefaultPreferences(userID)
	} else if err != nil {
		return nil, fmt.Errorf("%w: preferences: %v", common.ErrFetchFailed, err)
	}

	if doc.MoodLogs, err = s.repomanager.Moods(s.db).SelectSince(ctx, userID, time.Time{}); err != nil {
		return nil, fmt.Errorf("%w: mood logs: %v", common.ErrFetchFailed, err)
	}
	if doc.QuestionnaireItems, err = s.repomanager.Questionnaires(s.db).SelectSince(ctx, userID, time.Time{}); err != nil {
		return nil, fmt.Errorf("%w: questionnaire results: %v", common.ErrFetchFailed, err)
	}
	if doc.JournalEntries, err = s.repomanager.Journal(s.db).List(ctx, userID, 0); err != nil {
		return nil, fmt.Errorf("%w: journal entries: %v", common.ErrFetchFailed, err)
	}
	if doc.BreathingSessions, err = s.repomanager.Breathing(s.db).List(ctx, userID, 0); err != nil {
		return nil, fmt.Errorf("%w: breathing sessions: %v", common.ErrFetchFailed, err)
	}
	return doc, nil
}

// Export uploads the user's data and returns a presigned GET link valid for
// ExportLinkValidity.
func (s *ExportService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	doc, err := s.Collect(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := exportKey(userID, doc.GeneratedAt)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ExportLinkValidity))
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &ExportResult{Key: key, URL: req.URL, ExpiresAt: doc.GeneratedAt.Add(ExportLinkValidity)}, nil
}
