package models

import (
	"strings"
	"time"
)

// StoredBlob is the blob store's view of an uploaded object.
type StoredBlob struct {
	URL        string    `json:"url"`
	Pathname   string    `json:"pathname"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Age returns how long ago the blob was uploaded relative to now.
func (b StoredBlob) Age(now time.Time) time.Duration {
	return now.Sub(b.UploadedAt)
}

func containsAddress(list []string, addr string) bool {
	for _, a := range list {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(addr)) {
			return true
		}
	}
	return false
}
