package services

import (
	"bytes"
	"context"
	"path"
	"strings"

	"carmarket/app/storage"

	"github.com/google/uuid"
)

// DirectUploader writes image bytes straight into the object store, skipping
// the presign round trip. It satisfies the form package's Uploader.
type DirectUploader struct {
	Store   storage.Store
	Uploads *UploadService
}

func (d *DirectUploader) Upload(_ context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := uuid.NewString() + ext
	if err := d.Store.Put(key, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return d.Uploads.PublicURL(key), nil
}
