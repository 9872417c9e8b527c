package pictureBed

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	appconfig "dormitory-management-system/config"
)

// PictureBed 图片上传工具类
// 默认将图片保存到本地目录并返回访问路径；配置了 S3 时改走对象存储

type PictureBed struct {
	SaveDir string // 图片保存目录
	BaseURL string // 图片访问基础URL

	s3 *s3Backend // 非 nil 时上传到对象存储
}

// NewPictureBed 创建本地图片床实例
func NewPictureBed(saveDir, baseURL string) *PictureBed {
	return &PictureBed{
		SaveDir: saveDir,
		BaseURL: baseURL,
	}
}

// FromConfig 按全局配置选择存储后端
func FromConfig() *PictureBed {
	cfg := appconfig.Get()
	pb := NewPictureBed(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if cfg.S3.Enable {
		pb.s3 = newS3Backend(cfg.S3)
	}
	return pb
}

// SaveImage 保存图片并返回访问URL
func (pb *PictureBed) SaveImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if pb.s3 != nil {
		return pb.s3.upload(ctx, fileHeader)
	}
	return pb.saveLocal(fileHeader)
}

// saveLocal 保存图片到本地
func (pb *PictureBed) saveLocal(fileHeader *multipart.FileHeader) (string, error) {
	// 打开上传的文件
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	// 确保保存目录存在
	if err := os.MkdirAll(pb.SaveDir, os.ModePerm); err != nil {
		return "", err
	}

	// 生成唯一文件名
	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	filePath := filepath.Join(pb.SaveDir, filename)

	// 创建目标文件
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// 拷贝内容
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	// 返回图片访问URL
	return pb.BaseURL + "/" + filename, nil
}
