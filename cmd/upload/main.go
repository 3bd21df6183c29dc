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

// The upload command pushes one or more local images through the client
// pipeline: validate, compress, and POST to the configured endpoint.
//
//	upload --uploadEndpoint http://127.0.0.1:8090/api/photos photo1.jpg photo2.png
//
// The bearer credential is read from CASAFLOW_TOKEN.
package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/casaflow-io/casaflow/pkg/cflog"
	"github.com/casaflow-io/casaflow/pkg/config"
	"github.com/casaflow-io/casaflow/pkg/media"
	"github.com/casaflow-io/casaflow/pkg/upload"
)

func main() {
	photoType := pflag.String("photoType", "", "Optional photo_type field (e.g. refrigerator, freezer, closet, general)")
	concurrency := pflag.Int("concurrency", 1, "How many uploads run at once")

	if err := config.InitConfig(); err != nil {
		cflog.Fatalf("Failed to initialize configuration: %v", err)
	}
	cfg := config.Get()

	if cfg.UploadEndpoint == "" {
		cflog.Fatal("No upload endpoint configured (set uploadEndpoint)")
	}
	files := pflag.Args()
	if len(files) == 0 {
		cflog.Fatal("No files given")
	}

	assets := make([]media.Asset, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			cflog.Fatalf("Failed to read %s: %v", path, err)
		}
		name := filepath.Base(path)
		assets = append(assets, media.NewAsset(name, mimeOf(name), data))
	}

	coordinator := &upload.Coordinator{
		Uploader: &upload.Uploader{
			Credentials: upload.CredentialFunc(func() (string, bool) {
				token := os.Getenv("CASAFLOW_TOKEN")
				return token, token != ""
			}),
			Validator: media.Validator{MaxBytes: cfg.MaxUploadBytes},
			MaxWidth:  cfg.MaxImageWidth,
		},
		Concurrency: *concurrency,
	}

	result := coordinator.UploadAll(context.Background(), assets, cfg.UploadEndpoint,
		upload.Options{PhotoType: *photoType},
		upload.ProgressFunc(func(pct int) {
			fmt.Printf("\rprogress: %3d%%", pct)
		}))
	fmt.Println()

	for i, err := range result.Errors {
		if err != nil {
			cflog.Errorf("%s failed: %v", files[i], err)
		}
	}
	for _, url := range result.URLs {
		fmt.Println(url)
	}
	cflog.Infof("Uploaded %d of %d photos (%d failed)", result.Succeeded, result.Total, result.Failed)

	if result.Succeeded == 0 {
		os.Exit(1)
	}
}

// mimeOf maps a filename to its declared MIME type.
func mimeOf(name string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}
