package services

import (
	"fmt"
	"path"
	"strings"
	"time"

	"carmarket/app/storage"

	"github.com/google/uuid"
)

type PresignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	ExpiresAt int64  `json:"expires_at"`
}

// UploadService issues presigned upload URLs that point back at this
// process's upload endpoint, and the matching public URLs.
type UploadService struct {
	Signer  *storage.Presigner
	BaseURL string
}

func NewUploadService(signer *storage.Presigner, baseURL string) *UploadService {
	return &UploadService{Signer: signer, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Presign mints a fresh object key from the original filename's extension
// and signs an upload authorization for it.
func (s *UploadService) Presign(filename string, now time.Time) PresignedUpload {
	ext := strings.ToLower(path.Ext(filename))
	key := uuid.NewString() + ext
	exp, sig := s.Signer.Issue(key, now)
	return PresignedUpload{
		Key:       key,
		UploadURL: fmt.Sprintf("%s/api/upload/%s?exp=%d&sig=%s", s.BaseURL, key, exp, sig),
		PublicURL: s.PublicURL(key),
		ExpiresAt: exp,
	}
}

func (s *UploadService) PublicURL(key string) string {
	return s.BaseURL + "/files/" + key
}
