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
	"errors"

	"github.com/casaflow-io/casaflow/pkg/cache"
)

// ErrMetaNotFound is returned when no metadata exists under a key.
var ErrMetaNotFound = errors.New("photo metadata not found")

// MemoryMetaStore keeps photo metadata in process memory with the same TTL
// the Dragonfly store uses. It backs development setups with no Redis.
type MemoryMetaStore struct {
	entries *cache.Cache[*PhotoMetadata]
}

// NewMemoryMetaStore returns an empty in-memory MetaStore.
func NewMemoryMetaStore() *MemoryMetaStore {
	return &MemoryMetaStore{entries: cache.New[*PhotoMetadata](metaTTL)}
}

// SavePhotoMeta implements the MetaStore interface.
func (m *MemoryMetaStore) SavePhotoMeta(key string, metadata *PhotoMetadata) error {
	if metadata == nil {
		return errors.New("metadata cannot be nil")
	}
	m.entries.Set(key, metadata)
	return nil
}

// GetPhotoMeta implements the MetaStore interface.
func (m *MemoryMetaStore) GetPhotoMeta(key string) (*PhotoMetadata, error) {
	metadata, ok := m.entries.Get(key)
	if !ok {
		return nil, ErrMetaNotFound
	}
	return metadata, nil
}

// Sweep evicts expired metadata entries and reports how many were removed.
func (m *MemoryMetaStore) Sweep() int {
	return m.entries.Sweep()
}
