package pictureBed

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"sync"
	"time"

	appconfig "dormitory-management-system/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Backend 对象存储后端，兼容 MinIO 等 S3 协议实现
type s3Backend struct {
	cfg appconfig.S3

	once     sync.Once
	initErr  error
	client   *s3.Client
	uploader *manager.Uploader
}

func newS3Backend(cfg appconfig.S3) *s3Backend {
	return &s3Backend{cfg: cfg}
}

// init 延迟初始化 S3 客户端
func (b *s3Backend) init(ctx context.Context) error {
	b.once.Do(func() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(b.cfg.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(b.cfg.AccessKey, b.cfg.SecretAccessKey, ""),
			),
		)
		if err != nil {
			b.initErr = fmt.Errorf("初始化 S3 客户端失败: %w", err)
			return
		}

		b.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if b.cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(b.cfg.Endpoint)
			}
			o.UsePathStyle = b.cfg.UsePathStyle
		})
		b.uploader = manager.NewUploader(b.client)
	})
	return b.initErr
}

// upload 将图片上传到对象存储并返回访问 URL
func (b *s3Backend) upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if b.cfg.Bucket == "" {
		return "", fmt.Errorf("S3 bucket 未配置")
	}
	if err := b.init(ctx); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	// 生成唯一的文件名（时间戳 + 原始扩展名）
	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	uniqueFilename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	// 构建完整的对象 key（包含前缀）
	key := path.Join(strings.Trim(b.cfg.Prefix, "/"), uniqueFilename)
	key = strings.TrimLeft(key, "/")

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.cfg.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("上传图片到 S3 失败: %w", err)
	}

	// 构建访问 URL
	base := strings.TrimRight(b.cfg.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(b.cfg.Endpoint, "/")
	}
	if b.cfg.UsePathStyle {
		return base + "/" + b.cfg.Bucket + "/" + key, nil
	}
	return base + "/" + key, nil
}
