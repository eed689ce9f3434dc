package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	Bucket        string
	Region        string
	PublicBaseURL string
}

// objectStore is the subset of *minio.Client used here.
type objectStore interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type prober func(path string) (float64, error)

type MediaStorage struct {
	store   objectStore
	bucket  string
	baseURL string
	probe   prober
}

// NewMinioClient builds the client and creates the bucket when it is missing.
func NewMinioClient(ctx context.Context, cfg Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.GetLogger().WithField("bucket", cfg.Bucket).Info("Created media bucket")
	}
	return client, nil
}

func NewMediaStorage(client *minio.Client, cfg Config) repository.IMedia {
	return newMediaStorage(client, cfg, probeDuration)
}

func newMediaStorage(store objectStore, cfg Config, probe prober) *MediaStorage {
	return &MediaStorage{
		store:   store,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		probe:   probe,
	}
}

func (s *MediaStorage) Upload(ctx context.Context, localPath string, kind model.MediaKind) (model.MediaAsset, error) {
	defer removeLocal(ctx, localPath)

	if localPath == "" {
		return model.MediaAsset{}, fmt.Errorf("upload %s: empty path", kind)
	}
	stat, err := os.Stat(localPath)
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("upload %s: %w", kind, err)
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	objectName := objectNameFor(kind, uuid.NewString(), ext)
	opts := minio.PutObjectOptions{ContentType: contentType(ext)}
	info, err := s.store.FPutObject(ctx, s.bucket, objectName, localPath, opts)
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("put object %s: %w", objectName, err)
	}

	asset := model.MediaAsset{
		URL:          s.baseURL + "/" + objectName,
		PublicID:     objectName,
		ResourceType: kind,
		Size:         info.Size,
	}
	if asset.Size == 0 {
		asset.Size = stat.Size()
	}
	if kind == model.MediaKindVideo && s.probe != nil {
		duration, err := s.probe(localPath)
		if err != nil {
			logger.FromContext(ctx).WithField("error", err).WithField("object", objectName).Warn("Probe video duration failed")
		}
		asset.Duration = duration
	}
	return asset, nil
}

func (s *MediaStorage) Delete(ctx context.Context, publicID string, kind model.MediaKind) error {
	if publicID == "" {
		return nil
	}
	if err := s.store.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s object %s: %w", kind, publicID, err)
	}
	return nil
}

func objectNameFor(kind model.MediaKind, id, ext string) string {
	return fmt.Sprintf("%s/%s%s", kind, id, ext)
}

// mime's builtin table has no video types, so those are listed here.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

func contentType(ext string) string {
	if ct, ok := videoTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func publicBaseURL(cfg Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

func removeLocal(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.FromContext(ctx).WithField("error", err).WithField("path", path).Warn("Failed to remove temp file")
	}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probeDuration shells out to ffprobe and returns the container duration in seconds.
func probeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbeDuration([]byte(out))
}

func parseProbeDuration(data []byte) (float64, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("decode ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return d, nil
}
