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

package media

// DefaultMaxBytes is the upload size ceiling applied when a Validator has no
// explicit limit.
const DefaultMaxBytes int64 = 5 << 20 // 5 MiB

// allowedTypes is the MIME allow-list for candidate images.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Validator checks size and type constraints on a candidate image.
// The zero value uses DefaultMaxBytes.
type Validator struct {
	MaxBytes int64
}

// Validate returns nil if an asset of the given declared size and MIME type
// may enter the pipeline, or a ValidationError otherwise. It has no side
// effects and must run before compression so invalid input never reaches the
// compressor.
func (v Validator) Validate(sizeBytes int64, mimeType string) error {
	maxBytes := v.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if sizeBytes > maxBytes {
		return ValidationError{Kind: TooLarge, Size: sizeBytes, MIME: mimeType}
	}
	if !allowedTypes[mimeType] {
		return ValidationError{Kind: UnsupportedType, Size: sizeBytes, MIME: mimeType}
	}
	return nil
}

// Validate checks an asset against the default limits.
func Validate(sizeBytes int64, mimeType string) error {
	return Validator{}.Validate(sizeBytes, mimeType)
}
