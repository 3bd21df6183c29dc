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

// CredentialSource exposes the bearer credential held by the external
// session store. The second return value is false when no credential is
// available.
type CredentialSource interface {
	Credential() (string, bool)
}

// CredentialFunc adapts a plain function to a CredentialSource.
type CredentialFunc func() (string, bool)

func (f CredentialFunc) Credential() (string, bool) {
	return f()
}

// StaticCredential returns a source that always yields cred.
func StaticCredential(cred string) CredentialSource {
	return CredentialFunc(func() (string, bool) {
		return cred, true
	})
}
