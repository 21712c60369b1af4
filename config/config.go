package config

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config 结构体用于存储应用程序的配置信息
type Config struct {
	FirestoreProjectID string
	CredentialsFile    string
	StorageProvider    string // gcs / s3 / local
	GCSBucketName      string
	S3Region           string
	S3Bucket           string
	LocalStoragePath   string
	LogLevel           string
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	FrontendURL        string
	BackendURL         string
	Debug              bool // 是否开启调试模式
}

// AppConfig 是全局配置变量
var AppConfig Config

// Init 函数用于初始化配置
func Init() {
	// 加载 .env 文件
	err := godotenv.Load()
	if err != nil {
		log.Printf("警告：无法加载 .env 文件: %v", err)
	}

	// 从环境变量中读取配置
	AppConfig = Config{
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		CredentialsFile:    getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		StorageProvider:    getEnv("STORAGE_PROVIDER", "gcs"),
		GCSBucketName:      getEnv("GCS_BUCKET_NAME", ""),
		S3Region:           getEnv("S3_REGION", "us-west-2"),
		S3Bucket:           getEnv("S3_BUCKET", "your-bucket-name"),
		LocalStoragePath:   getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnvAsInt("SMTP_PORT", 465),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:         getEnv("BACKEND_URL", "http://localhost:8080"),
		Debug:              getEnvAsBool("DEBUG", true),
	}

	validateConfig()

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("应用程序运行在调试模式")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("应用程序运行在生产模式")
	}

	log.Printf("配置加载完成。Firestore 项目：%s，存储方式：%s", AppConfig.FirestoreProjectID, AppConfig.StorageProvider)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func validateConfig() {
	if AppConfig.FirestoreProjectID == "" {
		log.Fatal("错误：未设置 FIRESTORE_PROJECT_ID")
	}
	if AppConfig.StorageProvider == "gcs" && AppConfig.GCSBucketName == "" {
		log.Fatal("错误：使用 GCS 存储时必须设置 GCS_BUCKET_NAME")
	}
	if AppConfig.StorageProvider == "s3" && AppConfig.S3Bucket == "" {
		log.Fatal("错误：使用 S3 存储时必须设置 S3_BUCKET")
	}
}
