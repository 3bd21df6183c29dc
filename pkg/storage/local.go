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

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/casaflow-io/casaflow/pkg/util"
)

// photoCategories are the subdirectories photos are organized under.
var photoCategories = []string{"maintenance", "checklists", "profiles"}

// LocalStore keeps photos on the local disk. It is the fallback when no
// object-storage bucket is configured.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore prepares dir and its category subdirectories. baseURL is
// the prefix stored photos are served under.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if !util.Exist(dir) {
		if err := util.CreateDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	for _, category := range photoCategories {
		sub := filepath.Join(dir, category)
		if !util.Exist(sub) {
			if err := util.CreateDir(sub); err != nil {
				return nil, fmt.Errorf("failed to create upload dir: %w", err)
			}
		}
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Put writes the photo bytes under the store's directory and returns the
// URL they will be served from.
func (s *LocalStore) Put(_ context.Context, objectName string, reader io.Reader, _ int64) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("local store failed: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("local store failed: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("local store failed: %w", err)
	}
	return s.baseURL + "/" + objectName, nil
}
