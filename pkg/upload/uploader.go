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
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/casaflow-io/casaflow/pkg/media"
)

const (
	// minCredentialLen is the shortest credential worth sending to the server.
	minCredentialLen = 10

	// photoField is the multipart form field carrying the image bytes.
	photoField = "photo"
	// photoTypeField is the optional multipart field naming the photo category.
	photoTypeField = "photo_type"

	// maxResponseBytes bounds how much of a response body is read when
	// extracting a URL or an error message.
	maxResponseBytes = 1 << 20
)

// Options carries per-upload parameters beyond the asset itself.
type Options struct {
	// PhotoType, when non-empty, is sent as the photo_type field. Checklist
	// uploads use it to categorize photos (refrigerator, freezer, closet,
	// general); maintenance uploads leave it empty.
	PhotoType string
}

// Uploader validates, compresses, and transmits one image at a time.
// The zero value is usable; it uses http.DefaultClient, the default
// validation limits, and no credential source (every upload then fails
// with Unauthenticated).
type Uploader struct {
	// Client performs the HTTP requests. Nil means http.DefaultClient.
	Client *http.Client
	// Credentials supplies the bearer credential attached to each upload.
	Credentials CredentialSource
	// Validator holds the pre-flight size/type limits.
	Validator media.Validator
	// MaxWidth clamps image width before upload. Zero means the default.
	MaxWidth int
}

// uploadResponse is the useful subset of a success body.
type uploadResponse struct {
	URL      string `json:"url"`
	PhotoURL string `json:"photo_url"`
}

// errorResponse is the useful subset of a failure body.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Upload pushes one asset through validate, compress, and transmit, and
// returns the URL the server stored it under. Validation and credential
// failures are detected before any network call. On success the observer is
// invoked exactly once with 100; the transport does not expose byte-level
// progress, so completion is all there is to report.
func (u *Uploader) Upload(ctx context.Context, asset media.Asset, endpoint string, opts Options, progress ProgressObserver) (string, error) {
	if err := u.Validator.Validate(asset.Size, asset.MIME); err != nil {
		return "", err
	}

	compressed, err := media.Compress(asset.Data, u.MaxWidth)
	if err != nil {
		return "", err
	}

	cred, err := u.credential()
	if err != nil {
		return "", err
	}

	body, contentType, err := multipartBody(asset.Name, compressed, opts.PhotoType)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+cred)

	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload transport failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", RemoteError{
			Status:  resp.StatusCode,
			Message: remoteMessage(resp.StatusCode, payload),
		}
	}

	var parsed uploadResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", MalformedResponseError{Reason: "body is not valid JSON"}
	}
	url := parsed.URL
	if url == "" {
		url = parsed.PhotoURL
	}
	if url == "" {
		return "", MalformedResponseError{Reason: "no url field in response"}
	}

	if progress != nil {
		progress.Progress(100)
	}
	return url, nil
}

// credential fetches and sanity-checks the bearer credential.
func (u *Uploader) credential() (string, error) {
	if u.Credentials == nil {
		return "", AuthError{Kind: Unauthenticated}
	}
	cred, ok := u.Credentials.Credential()
	if !ok || cred == "" {
		return "", AuthError{Kind: Unauthenticated}
	}
	if len(cred) < minCredentialLen {
		return "", AuthError{Kind: InvalidCredential}
	}
	return cred, nil
}

// multipartBody assembles the upload form: the compressed JPEG under the
// photo field plus the optional photo_type.
func multipartBody(name string, jpegData []byte, photoType string) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, photoField, jpegFilename(name)))
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(jpegData); err != nil {
		return nil, "", err
	}

	if photoType != "" {
		if err := writer.WriteField(photoTypeField, photoType); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// jpegFilename normalizes the uploaded filename to the re-encoded format.
func jpegFilename(name string) string {
	if name == "" {
		return "photo.jpg"
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name + ".jpg"
}

// remoteMessage extracts a human-readable message from a failure body, or
// synthesizes one from the status when the body is not structured data.
func remoteMessage(status int, payload []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
}
