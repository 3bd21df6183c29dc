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

// Asset is a caller-supplied binary blob with its declared size and MIME
// type. The pipeline only reads it; ownership stays with the caller.
type Asset struct {
	Name string
	MIME string
	Size int64
	Data []byte
}

// NewAsset builds an Asset whose declared size is taken from the data.
func NewAsset(name, mime string, data []byte) Asset {
	return Asset{
		Name: name,
		MIME: mime,
		Size: int64(len(data)),
		Data: data,
	}
}
