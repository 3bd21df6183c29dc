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
	"bytes"
	"image"
	"image/jpeg"

	// Register decoders for every type on the validator allow-list.
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxWidth is the width images are clamped to before upload.
	DefaultMaxWidth = 1920
	// jpegQuality is the fixed re-encode quality factor.
	jpegQuality = 80
)

// Compress resizes the source image so its width does not exceed maxWidth,
// preserving the aspect ratio, and re-encodes it as JPEG. Re-encoding happens
// regardless of the input format; normalizing everything to one format is
// deliberate. Sources already narrow enough keep their dimensions.
// If maxWidth <= 0, DefaultMaxWidth applies.
func Compress(data []byte, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, CompressionError{Kind: DecodeFailed, Err: err}
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height*maxWidth/width))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Src, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, CompressionError{Kind: EncodeFailed, Err: err}
	}
	return buf.Bytes(), nil
}
