package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 默认是空实现，测试中无需初始化
var Logger = zap.NewNop()

func InitLogger(logLevel string) {
	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level.SetLevel(level)
	Logger, _ = config.Build()
}

// Error 返回一个 zap.Field，用于记录错误
func Error(err error) zap.Field {
	return zap.Error(err)
}

// Int 返回一个 zap.Field，用于记录整数
func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}
