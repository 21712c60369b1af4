package storage

import (
	"context"
	"io"
)

// Storage 定义对象存储接口：写入一段字节并返回可公开访问的URL
type Storage interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
}
