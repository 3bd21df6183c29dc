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

// Package photo hosts a local implementation of the photo-upload endpoint
// the client pipeline talks to, for development and integration testing.
package photo

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/casaflow-io/casaflow/pkg/cflog"
	"github.com/casaflow-io/casaflow/pkg/storage"
	"github.com/casaflow-io/casaflow/pkg/util"
)

const (
	// maxFormMemory bounds how much of the multipart form is held in memory.
	maxFormMemory = 10 << 20

	// minCredentialLen mirrors the client's local sanity check.
	minCredentialLen = 10
)

// PhotoHandler accepts multipart photo uploads and stores them.
type PhotoHandler struct {
	Objects storage.ObjectStore
	Meta    storage.MetaStore
}

// Register mounts the handler's routes on mux.
func (h *PhotoHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/photos", h.Upload)
	mux.HandleFunc("GET /api/photos/meta/", h.Metadata)
}

// Upload handles one multipart photo: the image bytes arrive under the
// "photo" field, with an optional "photo_type" categorizing checklist shots.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	cflog.Debug("photo upload request started")

	if !authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "missing or invalid bearer token")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "body is not a valid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "missing photo field")
		return
	}
	defer file.Close()

	photoType := r.FormValue("photo_type")
	category := "maintenance"
	if photoType != "" {
		category = "checklists"
	}

	objectName := "photos/" + category + "/" + uuid.NewString() + ".jpg"
	url, err := h.Objects.Put(r.Context(), objectName, file, header.Size)
	if err != nil {
		cflog.Errorf("Failed to store photo %s: %v", objectName, err)
		writeError(w, http.StatusInternalServerError, "Storage failed", "could not store the photo")
		return
	}

	metadata := &storage.PhotoMetadata{
		Filename:    header.Filename,
		Size:        header.Size,
		PhotoType:   photoType,
		StoragePath: objectName,
	}
	metaKey := util.RandomKey(6)
	if err := h.Meta.SavePhotoMeta(metaKey, metadata); err != nil {
		cflog.Errorf("Failed to save metadata for %s: %v", objectName, err)
		writeError(w, http.StatusInternalServerError, "Storage failed", "could not record photo metadata")
		return
	}

	cflog.Infof("Photo %s stored as %s", header.Filename, objectName)
	writeJSON(w, http.StatusOK, map[string]string{"url": url, "key": metaKey})
}

// Metadata returns the stored record for one photo object.
func (h *PhotoHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	if !authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "missing or invalid bearer token")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/photos/meta/")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "missing photo key")
		return
	}

	metadata, err := h.Meta.GetPhotoMeta(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found", "no metadata for that photo")
		return
	}
	writeJSON(w, http.StatusOK, metadata)
}

func authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	cred, ok := strings.CutPrefix(auth, "Bearer ")
	return ok && len(cred) >= minCredentialLen
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		cflog.Errorf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, errName, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errName,
		"message": message,
	})
}
