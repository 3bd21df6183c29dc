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

import (
	"errors"
	"fmt"
)

// AuthKind enumerates local credential failures.
type AuthKind int

const (
	// Unauthenticated means no credential was available from the session store.
	Unauthenticated AuthKind = iota
	// InvalidCredential means the credential was present but implausibly short.
	InvalidCredential
)

// AuthError reports a local credential failure detected before any network
// call. It is a cheap sanity check, not a substitute for server-side
// verification.
type AuthError struct {
	Kind AuthKind
}

func (e AuthError) Error() string {
	switch e.Kind {
	case Unauthenticated:
		return "no credential available"
	case InvalidCredential:
		return "credential is too short to be valid"
	default:
		return "authentication failed"
	}
}

// IsAuthError reports whether err is an AuthError of any kind.
func IsAuthError(err error) bool {
	var aerr AuthError
	return errors.As(err, &aerr)
}

// RemoteError reports a non-success HTTP status from the upload endpoint.
// Message holds the server's own message when the response body carried one,
// else a synthesized status line.
type RemoteError struct {
	Status  int
	Message string
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("upload rejected (HTTP %d): %s", e.Status, e.Message)
}

// IsRemoteError reports whether err is a RemoteError.
func IsRemoteError(err error) bool {
	var rerr RemoteError
	return errors.As(err, &rerr)
}

// MalformedResponseError reports a success status whose body did not carry
// the expected URL field.
type MalformedResponseError struct {
	Reason string
}

func (e MalformedResponseError) Error() string {
	return "malformed upload response: " + e.Reason
}

// IsMalformedResponse reports whether err is a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var merr MalformedResponseError
	return errors.As(err, &merr)
}
