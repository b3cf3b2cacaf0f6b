package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sc "github.com/hifi-israel/sikacare/internal/server/config"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/hifi-israel/sikacare/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	s3Scheme             = "s3://"
	avatarPresignExpires = time.Hour
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AvatarService lists the avatar catalog. Images kept in object storage are
// referenced as s3://bucket/key and handed out as presigned GET URLs.
type AvatarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewAvatarService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *AvatarService {
	return &AvatarService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// splitS3URL returns bucket and key of an s3://bucket/key reference.
func splitS3URL(u string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(u, s3Scheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func (s *AvatarService) ListActive(ctx context.Context) ([]models.Avatar, error) {
	list, err := s.repomanager.Avatars(s.db).ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var pc *s3.PresignClient
	for i := range list {
		bucket, key, ok := splitS3URL(list[i].ImageURL)
		if !ok {
			continue
		}
		if pc == nil {
			if pc, err = s.getPresignClient(ctx); err != nil {
				return nil, fmt.Errorf("error creating presign client: %w", err)
			}
		}
		req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(avatarPresignExpires))
		if err != nil {
			return nil, fmt.Errorf("error presigning %s: %w", list[i].Key, err)
		}
		list[i].ImageURL = req.URL
	}

	return list, nil
}
