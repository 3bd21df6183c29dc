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

package upload

// ProgressObserver receives progress percentages in the range 0..100.
// Keeping this an interface decouples the uploaders from any particular
// notification mechanism; callers can bridge it to channels or UI updates.
type ProgressObserver interface {
	Progress(percent int)
}

// ProgressFunc adapts a plain function to a ProgressObserver.
type ProgressFunc func(percent int)

func (f ProgressFunc) Progress(percent int) {
	f(percent)
}
