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
	"io"
)

// PhotoMetadata is the record kept alongside every stored photo.
type PhotoMetadata struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	PhotoType   string `json:"photoType,omitempty"`
	StoragePath string `json:"storagePath"`
	UploaderID  string `json:"uploaderId,omitempty"`
}

// ObjectStore persists photo bytes and returns the URL they are served from.
type ObjectStore interface {
	// Put stores the object and returns its public URL.
	Put(ctx context.Context, objectName string, reader io.Reader, size int64) (string, error)
}

// MetaStore persists photo metadata keyed by the stored object name.
// Decoupling this behind an interface keeps the handler independent of the
// concrete store.
type MetaStore interface {
	// SavePhotoMeta saves the photo metadata under a key with a TTL.
	SavePhotoMeta(key string, metadata *PhotoMetadata) error

	// GetPhotoMeta retrieves photo metadata by its key.
	GetPhotoMeta(key string) (*PhotoMetadata, error)
}
