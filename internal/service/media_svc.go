package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 接口定义 ====================

// MediaProvider 媒体存储提供者接口
type MediaProvider interface {
	// Upload 上传文件，返回公开访问URL
	Upload(ctx context.Context, data []byte, key string, contentType string) (url string, err error)

	// Delete 删除文件
	Delete(ctx context.Context, url string) error

	// GetSignedURL 获取签名URL (私有存储时使用)
	GetSignedURL(ctx context.Context, url string, expires time.Duration) (signedURL string, err error)
}

// ==================== 配置 ====================

type MediaConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点 (MinIO 等 S3 兼容存储)
	CDNDomain string // CDN域名 (可选)
	BasePath  string // 基础路径前缀
}

// ==================== 工厂方法 ====================

func NewMediaProvider(cfg *MediaConfig) (MediaProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Media(cfg)
	case "local":
		return NewLocalMedia(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== MediaService ====================

// 允许上传的图片类型
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/x-icon":  true,
}

// MaxUploadSize 单文件上传上限 (10MB)
const MaxUploadSize = 10 << 20

// MediaService 店铺媒体资源服务
// 负责 Section 配置图片、店铺 Logo、Favicon 等静态资源的上传
type MediaService struct {
	provider MediaProvider
	config   *MediaConfig
}

// NewMediaService 创建媒体服务
func NewMediaService(cfg *MediaConfig) (*MediaService, error) {
	provider, err := NewMediaProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &MediaService{
		provider: provider,
		config:   cfg,
	}, nil
}

// UploadImage 上传店铺图片，按店铺和日期组织存储路径
func (s *MediaService) UploadImage(ctx context.Context, storeID int64, data []byte, filename string, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: 文件内容为空", ErrValidation)
	}
	if len(data) > MaxUploadSize {
		return "", fmt.Errorf("%w: 文件超过 10MB 限制", ErrValidation)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("%w: 不支持的图片类型 %s", ErrValidation, contentType)
	}

	key := buildMediaKey(storeID, filename)
	return s.provider.Upload(ctx, data, key, contentType)
}

// UploadBase64 上传 Base64 编码的图片 (富文本编辑器粘贴场景)
func (s *MediaService) UploadBase64(ctx context.Context, storeID int64, base64Data string) (string, error) {
	// 去除可能的 data URL 前缀
	if idx := strings.Index(base64Data, ","); idx != -1 {
		base64Data = base64Data[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("%w: Base64 解码失败", ErrValidation)
	}
	return s.UploadImage(ctx, storeID, data, "paste.jpg", "")
}

// Delete 删除文件
func (s *MediaService) Delete(ctx context.Context, url string) error {
	return s.provider.Delete(ctx, url)
}

// GetSignedURL 获取签名URL
func (s *MediaService) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return s.provider.GetSignedURL(ctx, url, expires)
}

// buildMediaKey 生成存储路径: stores/{storeID}/{yyyy/mm/dd}/{uuid}{ext}
func buildMediaKey(storeID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	datePath := time.Now().Format("2006/01/02")
	return fmt.Sprintf("stores/%d/%s/%s%s", storeID, datePath, uuid.New().String(), ext)
}

// ==================== S3 实现 ====================

type S3Media struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
	basePath  string
}

func NewS3Media(cfg *MediaConfig) (*S3Media, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO 等自建 S3 兼容存储
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Media{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: cfg.CDNDomain,
		basePath:  cfg.BasePath,
	}, nil
}

func (s *S3Media) Upload(ctx context.Context, data []byte, key string, contentType string) (string, error) {
	if s.basePath != "" {
		key = s.basePath + "/" + key
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return s.getPublicURL(key), nil
}

func (s *S3Media) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("无法解析文件路径")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Media) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	key := s.extractKey(url)
	if key == "" {
		return "", fmt.Errorf("无法解析文件路径")
	}

	presignClient := s3.NewPresignClient(s.client)
	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}

	return presignedURL.URL, nil
}

func (s *S3Media) getPublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Media) extractKey(url string) string {
	if s.cdnDomain != "" && strings.Contains(url, s.cdnDomain) {
		return strings.TrimPrefix(url, fmt.Sprintf("https://%s/", s.cdnDomain))
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(url, prefix)
}

// ==================== 本地存储 (开发测试用) ====================

type LocalMedia struct {
	basePath string
	baseURL  string
}

func NewLocalMedia(cfg *MediaConfig) (*LocalMedia, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}

	return &LocalMedia{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalMedia) Upload(ctx context.Context, data []byte, key string, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %v", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %v", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalMedia) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	if key == url {
		return fmt.Errorf("无法解析文件路径")
	}
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalMedia) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return url, nil // 本地存储无需签名
}
