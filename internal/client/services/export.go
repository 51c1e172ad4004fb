package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/entries"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/google/uuid"
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Options points the exporter at an S3-compatible bucket. Empty AccessKey
// falls back to the default credential chain; empty Endpoint means AWS.
type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Snapshot is the exported document.
type Snapshot struct {
	ExportedAt time.Time             `json:"exported_at"`
	Entries    []models.JournalEntry `json:"entries"`
}

type ExportService interface {
	// Export uploads a JSON snapshot of all local entries and returns its key.
	Export(ctx context.Context) (string, error)
}

type exportService struct {
	entryRepo entries.Repository
	opts      S3Options
	log       logging.Logger
	now       func() time.Time
}

func NewExportService(entryRepo entries.Repository, opts S3Options, log logging.Logger) ExportService {
	if log == nil {
		log = logging.Nop()
	}
	return &exportService{entryRepo: entryRepo, opts: opts, log: log, now: time.Now}
}

// ExportKey is journal/YYYY/MM/DD/<uuid>.json for the given time.
func ExportKey(at time.Time) string {
	return path.Join("journal", at.UTC().Format("2006/01/02"), uuid.NewString()+".json")
}

func (s *exportService) getClient(ctx context.Context) (objectPutter, error) {
	var loadOpts []func(*config.LoadOptions) error
	if s.opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(s.opts.Region))
	}
	if s.opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.opts.AccessKey,
			s.opts.SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *exportService) Export(ctx context.Context) (string, error) {
	if s.opts.Bucket == "" {
		return "", errors.New("export bucket is not configured")
	}

	list, err := s.entryRepo.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("error retrieving entries: %w", err)
	}

	now := s.now()
	data, err := json.MarshalIndent(Snapshot{ExportedAt: now.UTC(), Entries: list}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding snapshot: %w", err)
	}

	c, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error loading s3 config: %w", err)
	}

	key := ExportKey(now)
	_, err = c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading snapshot: %w", err)
	}

	s.log.Info(ctx, "exported journal", "bucket", s.opts.Bucket, "key", key, "entries", len(list))
	return key, nil
}
