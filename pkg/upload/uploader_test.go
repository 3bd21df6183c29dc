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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaflow-io/casaflow/pkg/media"
)

const testCredential = "token-1234567890"

// countingTransport counts round trips so tests can assert that local
// failures never touch the network.
type countingTransport struct {
	calls int32
	inner http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&t.calls, 1)
	if t.inner == nil {
		return nil, errors.New("no transport configured")
	}
	return t.inner.RoundTrip(req)
}

func (t *countingTransport) count() int {
	return int(atomic.LoadInt32(&t.calls))
}

// pngAsset builds a decodable test asset.
func pngAsset(t *testing.T, name string, width, height int) media.Asset {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return media.NewAsset(name, "image/png", buf.Bytes())
}

// photoServer accepts the multipart contract and answers with a URL derived
// from the uploaded filename.
func photoServer(t *testing.T) (*httptest.Server, *countingTransport) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer "+testCredential, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"url": "https://cdn.example.com/photos/" + header.Filename,
		})
	}))
	t.Cleanup(srv.Close)
	transport := &countingTransport{inner: srv.Client().Transport}
	return srv, transport
}

func newTestUploader(transport *countingTransport) *Uploader {
	return &Uploader{
		Client:      &http.Client{Transport: transport},
		Credentials: StaticCredential(testCredential),
	}
}

func TestUploadSuccess(t *testing.T) {
	srv, transport := photoServer(t)
	u := newTestUploader(transport)

	var reports []int
	url, err := u.Upload(context.Background(), pngAsset(t, "kitchen.png", 40, 30), srv.URL, Options{}, ProgressFunc(func(p int) {
		reports = append(reports, p)
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/kitchen.jpg", url)
	assert.Equal(t, []int{100}, reports)
	assert.Equal(t, 1, transport.count())
}

func TestUploadSendsPhotoType(t *testing.T) {
	var gotPhotoType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotPhotoType = r.FormValue("photo_type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/p/1.jpg"}`))
	}))
	defer srv.Close()

	u := &Uploader{Credentials: StaticCredential(testCredential)}
	_, err := u.Upload(context.Background(), pngAsset(t, "fridge.png", 20, 20), srv.URL, Options{PhotoType: "refrigerator"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "refrigerator", gotPhotoType)
}

func TestUploadValidationFailureSkipsNetwork(t *testing.T) {
	transport := &countingTransport{}
	u := newTestUploader(transport)

	asset := media.Asset{Name: "doc.pdf", MIME: "application/pdf", Size: 1 << 10, Data: []byte("%PDF")}
	_, err := u.Upload(context.Background(), asset, "http://unused", Options{}, nil)

	assert.True(t, media.IsValidationError(err))
	assert.Equal(t, 0, transport.count())
}

func TestUploadCompressionFailureSkipsNetwork(t *testing.T) {
	transport := &countingTransport{}
	u := newTestUploader(transport)

	asset := media.NewAsset("broken.png", "image/png", []byte("not an image"))
	_, err := u.Upload(context.Background(), asset, "http://unused", Options{}, nil)

	assert.True(t, media.IsCompressionError(err))
	assert.Equal(t, 0, transport.count())
}

func TestUploadCredentialChecks(t *testing.T) {
	testCases := []struct {
		name     string
		source   CredentialSource
		wantKind AuthKind
	}{
		{
			name:     "nil source",
			source:   nil,
			wantKind: Unauthenticated,
		},
		{
			name:     "absent credential",
			source:   CredentialFunc(func() (string, bool) { return "", false }),
			wantKind: Unauthenticated,
		},
		{
			name:     "short credential",
			source:   StaticCredential("short"),
			wantKind: InvalidCredential,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transport := &countingTransport{}
			u := &Uploader{
				Client:      &http.Client{Transport: transport},
				Credentials: tc.source,
			}

			_, err := u.Upload(context.Background(), pngAsset(t, "a.png", 10, 10), "http://unused", Options{}, nil)

			var aerr AuthError
			require.True(t, errors.As(err, &aerr))
			assert.Equal(t, tc.wantKind, aerr.Kind)
			assert.Equal(t, 0, transport.count())
		})
	}
}

func TestUploadRemoteRejection(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		body        string
		contentType string
		wantMessage string
	}{
		{
			name:        "json message field",
			status:      http.StatusUnprocessableEntity,
			body:        `{"error":"Invalid photo","message":"photo is blurry"}`,
			contentType: "application/json",
			wantMessage: "photo is blurry",
		},
		{
			name:        "json error field only",
			status:      http.StatusForbidden,
			body:        `{"error":"not allowed"}`,
			contentType: "application/json",
			wantMessage: "not allowed",
		},
		{
			name:        "unstructured body",
			status:      http.StatusRequestEntityTooLarge,
			body:        "<html>too large</html>",
			contentType: "text/html",
			wantMessage: "HTTP 413 Request Entity Too Large",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			u := &Uploader{Credentials: StaticCredential(testCredential)}
			_, err := u.Upload(context.Background(), pngAsset(t, "a.png", 10, 10), srv.URL, Options{}, nil)

			var rerr RemoteError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tc.status, rerr.Status)
			assert.Equal(t, tc.wantMessage, rerr.Message)
		})
	}
}

func TestUploadMalformedSuccessResponse(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: "uploaded!"},
		{name: "json without url", body: `{"ok":true}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			u := &Uploader{Credentials: StaticCredential(testCredential)}
			var reports []int
			_, err := u.Upload(context.Background(), pngAsset(t, "a.png", 10, 10), srv.URL, Options{}, ProgressFunc(func(p int) {
				reports = append(reports, p)
			}))

			assert.True(t, IsMalformedResponse(err))
			assert.Empty(t, reports)
		})
	}
}

func TestUploadAcceptsPhotoURLField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"photo_url":"https://cdn.example.com/p/2.jpg"}`))
	}))
	defer srv.Close()

	u := &Uploader{Credentials: StaticCredential(testCredential)}
	url, err := u.Upload(context.Background(), pngAsset(t, "a.png", 10, 10), srv.URL, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/p/2.jpg", url)
}
