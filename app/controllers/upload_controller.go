package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"carmarket/app/dto"
	"carmarket/app/services"
	"carmarket/app/storage"
)

// maxUploadBytes caps a single image body.
const maxUploadBytes = 20 << 20

type UploadController struct {
	Uploads *services.UploadService
	Store   storage.Store
}

func NewUploadController(uploads *services.UploadService, store storage.Store) *UploadController {
	return &UploadController{Uploads: uploads, Store: store}
}

// Presign issues a time-limited upload URL plus the eventual public URL.
func (c *UploadController) Presign(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}
	writeJSON(w, http.StatusOK, c.Uploads.Presign(req.Filename, time.Now()))
}

// Put accepts the signed direct upload. The signature, not a bearer token,
// authorizes this request.
func (c *UploadController) Put(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	q := r.URL.Query()
	if !c.Uploads.Signer.Verify(key, q.Get("exp"), q.Get("sig"), time.Now()) {
		writeError(w, http.StatusForbidden, "invalid or expired upload authorization")
		return
	}
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	defer body.Close()
	if err := c.Store.Put(key, body); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key, "public_url": c.Uploads.PublicURL(key)})
}

// Serve streams a stored object.
func (c *UploadController) Serve(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rc, size, err := c.Store.Open(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rc.Close()
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	_, _ = io.Copy(w, rc)
}
