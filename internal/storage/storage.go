package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Storage receives reader backups and returns where they can be fetched.
type Storage interface {
	SaveFile(data []byte, filename string) (string, error)
}

type LocalStorage struct {
	dir string
}

type SpacesStorage struct {
	client   *s3.S3
	bucket   string
	endpoint string
	linkTTL  time.Duration
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

// NewSpacesStorage stores backups privately; SaveFile hands out presigned
// links valid for linkTTL.
func NewSpacesStorage(endpoint, region, bucket, accessKey, secretKey string, linkTTL time.Duration) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client:   s3.New(sess),
		bucket:   bucket,
		endpoint: endpoint,
		linkTTL:  linkTTL,
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename creates a unique, normalized filename without spaces
func normalizeFilename(originalFilename string) string {
	// Get file extension
	ext := filepath.Ext(originalFilename)
	baseName := strings.TrimSuffix(originalFilename, ext)

	// Remove or replace problematic characters
	// Replace spaces with underscores
	baseName = strings.ReplaceAll(baseName, " ", "_")

	// Remove or replace other problematic characters, keeping only alphanumeric, dash, underscore
	baseName = unsafeFilenameChars.ReplaceAllString(baseName, "")

	// Ensure the filename isn't empty after cleaning
	if baseName == "" {
		baseName = "file"
	}

	// Add timestamp to make it traceable, and a short id so two backups in
	// the same second do not collide
	timestamp := time.Now().Format("20060102_150405")
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]

	// Construct final filename: basename_timestamp_id.ext
	return fmt.Sprintf("%s_%s_%s%s", baseName, timestamp, id, ext)
}

func (ls *LocalStorage) SaveFile(data []byte, filename string) (string, error) {
	normalizedFilename := normalizeFilename(filename)
	log.Debug().Str("original", filename).Str("normalized", normalizedFilename).Msg("backup filename normalized")
	path := filepath.Join(ls.dir, normalizedFilename)

	if err := os.MkdirAll(ls.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path, nil
}

func (ss *SpacesStorage) SaveFile(data []byte, filename string) (string, error) {
	normalizedFilename := normalizeFilename(filename)
	log.Debug().Str("original", filename).Str("normalized", normalizedFilename).Msg("backup filename normalized")

	key := fmt.Sprintf("backups/%s", normalizedFilename)

	_, err := ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(getContentType(normalizedFilename)),
		ACL:         aws.String("private"),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to upload backup to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	req, _ := ss.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(key),
	})
	link, err := req.Presign(ss.linkTTL)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to presign backup link")
		return "", fmt.Errorf("failed to presign backup link: %w", err)
	}
	return link, nil
}

func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".gz":
		return "application/gzip"
	default:
		return "application/octet-stream"
	}
}
