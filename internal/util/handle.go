package util

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout 定义存储中统一使用的时间格式。
// 固定宽度的 UTC ISO-8601 字符串，保证字典序与时间序一致。
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// NowTimestamp 返回当前时间的存储格式字符串
func NowTimestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// HandleFromEmail 从邮箱地址推导用户名：取 @ 之前的部分并转为小写。
// 注意：不同邮箱的本地部分相同时会产生相同的用户名（已知限制）。
func HandleFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	return strings.ToLower(local)
}

// GenerateUniqueFilename 生成唯一的文件名
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	name := filepath.Base(originalFilename)
	name = name[:len(name)-len(ext)]

	return name + "_" + uuid.New().String() + ext
}
