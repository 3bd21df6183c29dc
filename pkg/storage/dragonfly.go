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
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// metaTTL is how long photo metadata stays queryable.
const metaTTL = 25 * time.Minute

// DragonflyStore implements MetaStore using Dragonfly/Redis.
type DragonflyStore struct {
	client redis.Cmdable
}

// NewDragonflyStore connects to Dragonfly/Redis at addr.
// It returns a MetaStore interface, hiding the implementation details.
func NewDragonflyStore(addr string) (MetaStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	// Check the connection.
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &DragonflyStore{client: client}, nil
}

// SavePhotoMeta implements the MetaStore interface.
func (d *DragonflyStore) SavePhotoMeta(key string, metadata *PhotoMetadata) error {
	if metadata == nil {
		return errors.New("metadata cannot be nil")
	}
	jsonMetadata, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	return d.client.Set(context.Background(), key, jsonMetadata, metaTTL).Err()
}

// GetPhotoMeta implements the MetaStore interface.
func (d *DragonflyStore) GetPhotoMeta(key string) (*PhotoMetadata, error) {
	val, err := d.client.Get(context.Background(), key).Result()
	if err != nil {
		return nil, err
	}

	var metadata PhotoMetadata
	if err := json.Unmarshal([]byte(val), &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}
