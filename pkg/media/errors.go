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

import (
	"errors"
	"fmt"
)

// ValidationKind enumerates the ways an asset can fail validation.
type ValidationKind int

const (
	// TooLarge means the declared size exceeds the upload ceiling.
	TooLarge ValidationKind = iota
	// UnsupportedType means the MIME type is outside the allow-list.
	UnsupportedType
)

// ValidationError reports that an asset was rejected before any processing.
type ValidationError struct {
	Kind ValidationKind
	Size int64
	MIME string
}

func (e ValidationError) Error() string {
	switch e.Kind {
	case TooLarge:
		return fmt.Sprintf("image of %d bytes exceeds the %d byte limit", e.Size, DefaultMaxBytes)
	case UnsupportedType:
		return fmt.Sprintf("unsupported image type %q", e.MIME)
	default:
		return "invalid image"
	}
}

// IsValidationError reports whether err is a ValidationError of any kind.
func IsValidationError(err error) bool {
	var verr ValidationError
	return errors.As(err, &verr)
}

// CompressionKind enumerates the two compressor failure stages.
type CompressionKind int

const (
	// DecodeFailed means the source bytes could not be decoded as an image.
	DecodeFailed CompressionKind = iota
	// EncodeFailed means re-encoding the resized image failed.
	EncodeFailed
)

// CompressionError reports a decode or encode failure for a single asset.
// It is terminal for that asset only, never for a whole batch.
type CompressionError struct {
	Kind CompressionKind
	Err  error
}

func (e CompressionError) Error() string {
	switch e.Kind {
	case DecodeFailed:
		return fmt.Sprintf("failed to decode image: %v", e.Err)
	case EncodeFailed:
		return fmt.Sprintf("failed to encode image: %v", e.Err)
	default:
		return fmt.Sprintf("compression failed: %v", e.Err)
	}
}

func (e CompressionError) Unwrap() error {
	return e.Err
}

// IsCompressionError reports whether err is a CompressionError of any kind.
func IsCompressionError(err error) bool {
	var cerr CompressionError
	return errors.As(err, &cerr)
}
