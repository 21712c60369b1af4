package util

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestHandleFromEmail 测试用户名推导规则
func TestHandleFromEmail(t *testing.T) {
	assert.Equal(t, "yvonne", HandleFromEmail("Yvonne@example.com"))
	assert.Equal(t, "a.b-c", HandleFromEmail("A.B-C@mail.org"))
	// 没有 @ 时整个字符串作为用户名
	assert.Equal(t, "noat", HandleFromEmail("NoAt"))
	assert.Equal(t, "", HandleFromEmail("@example.com"))
}

// TestTimestampOrdering 时间戳的字典序必须与时间序一致
func TestTimestampOrdering(t *testing.T) {
	base := time.Date(2024, 3, 9, 23, 59, 59, 999000000, time.UTC)
	stamps := []string{
		base.Format(TimestampLayout),
		base.Add(time.Microsecond).Format(TimestampLayout),
		base.Add(time.Second).Format(TimestampLayout),
		base.Add(time.Hour).Format(TimestampLayout),
		base.AddDate(0, 0, 1).Format(TimestampLayout),
	}

	sorted := append([]string(nil), stamps...)
	sort.Strings(sorted)
	assert.Equal(t, stamps, sorted)

	// 固定宽度
	for _, s := range stamps {
		assert.Len(t, s, len("2006-01-02T15:04:05.000000Z"))
	}
}

func TestGenerateUniqueFilename(t *testing.T) {
	a := GenerateUniqueFilename("cat.png")
	b := GenerateUniqueFilename("cat.png")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "cat_")
	assert.Equal(t, ".png", a[len(a)-4:])
}
