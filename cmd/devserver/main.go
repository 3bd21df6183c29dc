// Copyright 2025 The casaflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The devserver command hosts a local photo-upload endpoint so the client
// pipeline can be exercised without the real property API. Photos land in
// MinIO when configured through the environment, else on local disk.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casaflow-io/casaflow/pkg/cache"
	"github.com/casaflow-io/casaflow/pkg/cflog"
	"github.com/casaflow-io/casaflow/pkg/config"
	"github.com/casaflow-io/casaflow/pkg/cors"
	"github.com/casaflow-io/casaflow/pkg/storage"
	"github.com/casaflow-io/casaflow/service/photo"
)

func main() {
	if err := config.InitConfig(); err != nil {
		cflog.Fatalf("Failed to initialize configuration: %v", err)
	}
	cfg := config.Get()

	logLevel, err := cflog.ParseLevel(cfg.LogLevel)
	if err != nil {
		cflog.Warnf("Invalid log level '%s': %v. Using default.", cfg.LogLevel, err)
	}
	cflog.SetLevel(logLevel)

	objects, localDir := newObjectStore(cfg)
	meta := newMetaStore(cfg)

	// The in-memory store needs its own periodic sweep; Redis expires keys
	// by itself.
	var sweeper *cache.Sweeper
	if mem, ok := meta.(*storage.MemoryMetaStore); ok {
		sweeper = cache.NewSweeper(mem, cfg.SweepInterval)
	}

	handler := &photo.PhotoHandler{
		Objects: objects,
		Meta:    meta,
	}

	mux := http.NewServeMux()
	handler.Register(mux)
	if localDir != "" {
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(localDir))))
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: cors.NewCORS().Handler(mux),
	}

	// Setup graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		cflog.Info("Shutting down server...")

		if sweeper != nil {
			sweeper.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			cflog.Errorf("Server shutdown error: %v", err)
		}

		cflog.Info("Server shutdown complete")
		os.Exit(0)
	}()

	cflog.Infof("Dev photo server starting on %v", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cflog.Fatalf("Failed to start server: %v", err)
	}
}

// newObjectStore picks MinIO when the environment configures it, else the
// local-disk fallback. The second return value names the local dir when the
// fallback is active so main can serve it.
func newObjectStore(cfg config.Config) (storage.ObjectStore, string) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint != "" {
		store, err := storage.NewMinioStore(context.Background(), storage.MinioConfig{
			Endpoint:        endpoint,
			AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("MINIO_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("MINIO_BUCKET_NAME"),
			UseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
		})
		if err != nil {
			cflog.Fatalf("Failed to initialize MinIO store: %v", err)
		}
		cflog.Infof("Storing photos in MinIO bucket %q", os.Getenv("MINIO_BUCKET_NAME"))
		return store, ""
	}

	local, err := storage.NewLocalStore(cfg.UploadDir, "http://"+cfg.Addr+"/uploads")
	if err != nil {
		cflog.Fatalf("Failed to initialize local store: %v", err)
	}
	cflog.Infof("MinIO not configured, storing photos under %s", cfg.UploadDir)
	return local, cfg.UploadDir
}

// newMetaStore prefers Dragonfly/Redis and falls back to process memory.
func newMetaStore(cfg config.Config) storage.MetaStore {
	meta, err := storage.NewDragonflyStore(cfg.RedisAddr)
	if err == nil {
		cflog.Infof("Photo metadata in Dragonfly at %s", cfg.RedisAddr)
		return meta
	}
	cflog.Warnf("Dragonfly unreachable at %s (%v), keeping metadata in memory", cfg.RedisAddr, err)
	return storage.NewMemoryMetaStore()
}
