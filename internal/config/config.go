package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	// StorageBackendLocal stores blobs on the local filesystem.
	StorageBackendLocal = "local"
	// StorageBackendS3 stores blobs in an S3-compatible object store.
	StorageBackendS3 = "s3"
)

type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	S3          S3Config
	HuggingFace HuggingFaceConfig
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	Backend       string
	UploadDir     string
	PublicBaseURL string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type HuggingFaceConfig struct {
	Token    string
	ModelURL string
}

// Load reads configuration from the environment, applying defaults suited
// to local development.
func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("STORAGE_BACKEND", StorageBackendLocal)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:5000")
	viper.SetDefault("S3_ENDPOINT", "http://localhost:9000")
	viper.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	viper.SetDefault("S3_BUCKET_NAME", "gallery")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("HF_TOKEN", "")
	viper.SetDefault("HF_MODEL_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Storage: StorageConfig{
			Backend:       viper.GetString("STORAGE_BACKEND"),
			UploadDir:     viper.GetString("UPLOAD_DIR"),
			PublicBaseURL: viper.GetString("PUBLIC_BASE_URL"),
		},
		S3: S3Config{
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
			BucketName:      viper.GetString("S3_BUCKET_NAME"),
			Region:          viper.GetString("S3_REGION"),
		},
		HuggingFace: HuggingFaceConfig{
			Token:    viper.GetString("HF_TOKEN"),
			ModelURL: viper.GetString("HF_MODEL_URL"),
		},
	}

	if cfg.Storage.Backend != StorageBackendLocal && cfg.Storage.Backend != StorageBackendS3 {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}
