package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
)

const maxAttachmentSize = 50 * 1024 * 1024 // 50MB

// ValidateAttachment validates an uploaded submission attachment against
// the configured extension allowlist and size limit.
func ValidateAttachment(header *multipart.FileHeader) error {
	if header.Size == 0 {
		return fmt.Errorf("file is empty")
	}

	if header.Size > maxAttachmentSize {
		return fmt.Errorf("file size exceeds 50MB limit")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		return fmt.Errorf("file has no extension")
	}

	allowed := strings.Split(config.GetConfig().AttachmentAllowedTypes, ",")
	for _, a := range allowed {
		if strings.TrimSpace(a) == ext {
			return nil
		}
	}

	return fmt.Errorf("file type %s is not allowed", ext)
}
