package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
)

// MinIO 对象存储封装。简历原件与解析后的纯文本分桶存放。
type MinIO struct {
	client           *minio.Client
	originalsBucket  string
	parsedTextBucket string
}

// NewMinIO 创建MinIO客户端并确保目标桶存在
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:           client,
		originalsBucket:  cfg.OriginalsBucket,
		parsedTextBucket: cfg.ParsedTextBucket,
	}
	for _, bucket := range []string{m.originalsBucket, m.parsedTextBucket} {
		if err := m.ensureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MinIO) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("检查桶 %s 失败: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("创建桶 %s 失败: %w", bucket, err)
	}
	return nil
}

// resumeObjectKey 按批次组织简历原件，保留原始扩展名
func resumeObjectKey(batchID, filename string) string {
	return path.Join(batchID, filename)
}

// UploadResume 上传简历原件，返回对象键
func (m *MinIO) UploadResume(ctx context.Context, batchID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectKey := resumeObjectKey(batchID, filename)
	opts := minio.PutObjectOptions{ContentType: contentType}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}
	if _, err := m.client.PutObject(ctx, m.originalsBucket, objectKey, reader, size, opts); err != nil {
		return "", fmt.Errorf("上传简历原件失败: %w", err)
	}
	return objectKey, nil
}

// GetResume 下载简历原件的完整内容
func (m *MinIO) GetResume(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.originalsBucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取简历原件失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取简历原件失败: %w", err)
	}
	return data, nil
}

// ParsedTextKey 由简历原件对象键推导解析文本的对象键
func ParsedTextKey(objectKey string) string {
	return strings.TrimSuffix(objectKey, path.Ext(objectKey)) + ".txt"
}

// UploadParsedText 保存解析出的简历纯文本，便于复核与重算
func (m *MinIO) UploadParsedText(ctx context.Context, objectKey, text string) (string, error) {
	textKey := ParsedTextKey(objectKey)
	reader := bytes.NewReader([]byte(text))
	opts := minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"}
	if _, err := m.client.PutObject(ctx, m.parsedTextBucket, textKey, reader, int64(reader.Len()), opts); err != nil {
		return "", fmt.Errorf("上传解析文本失败: %w", err)
	}
	return textKey, nil
}

// GetParsedText 读取已保存的简历纯文本
func (m *MinIO) GetParsedText(ctx context.Context, textKey string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.parsedTextBucket, textKey, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("获取解析文本失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("读取解析文本失败: %w", err)
	}
	return string(data), nil
}
