package config

import "os"

// Config carries everything the process reads from the environment.
type Config struct {
	Port            string
	SecretKey       string
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string
	MetadataFile    string
	BlobFolder      string
}

// Load reads the configuration from environment variables, applying
// defaults where the variable is unset.
func Load() Config {
	return Config{
		Port:            getenv("PORT", "3000"),
		SecretKey:       getenv("SECRET_KEY", "dev-secret"),
		AccountID:       os.Getenv("ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("ACCESS_KEY_SECRET"),
		BucketName:      os.Getenv("BUCKET_NAME"),
		PublicURL:       os.Getenv("PUBLIC_URL"),
		MetadataFile:    getenv("METADATA_FILE", "image_metadata.json"),
		BlobFolder:      getenv("BLOB_FOLDER", "whiteboard_images"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
