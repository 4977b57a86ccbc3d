package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/collabboard/whiteboard-gallery/internal/blob"
	"github.com/collabboard/whiteboard-gallery/internal/config"
	"github.com/collabboard/whiteboard-gallery/internal/export"
	"github.com/collabboard/whiteboard-gallery/internal/handlers"
	"github.com/collabboard/whiteboard-gallery/internal/store"
)

func main() {
	// Load .env in development; in production the variables come from the
	// process environment.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatal("Error loading .env file", err)
		}
	}
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Chi
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Cookie store carrying the anonymous user token and joined session code
	maxAge := 86400 * 30
	isProd := false
	cookies := sessions.NewCookieStore([]byte(cfg.SecretKey))
	cookies.MaxAge(maxAge)
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.Secure = isProd

	// Create custom HTTP client with TLS config
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
			CipherSuites: []uint16{
				tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			},
		},
	}
	httpClient := &http.Client{Transport: tr}

	// AWS S3 configuration (R2-compatible endpoint)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal("ERR CONFIG:", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})
	blobs := blob.NewS3Store(client, cfg.BucketName, cfg.PublicURL)

	// Metadata store: load the snapshot, or rebuild once from the blob
	// store listing. A failed rebuild degrades to an empty store.
	meta, restored := store.OpenMetadata(cfg.MetadataFile, logger)
	if !restored {
		if err := meta.Rebuild(context.Background(), blobs, cfg.BlobFolder); err != nil {
			logger.Warn("rebuilding metadata from blob store", "error", err)
		}
	}

	h := handlers.New(
		meta,
		store.NewRegistry(meta),
		store.NewVisibility(),
		blobs,
		&export.HTTPFetcher{Client: httpClient},
		cookies,
		cfg.BlobFolder,
		logger,
	)
	r.Mount("/", h.Routes())

	log.Println("Starting API server on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
