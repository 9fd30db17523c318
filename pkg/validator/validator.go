// Package validator holds the small input validators shared by the service
// layer.
package validator

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Category name bounds.
const (
	MinCategoryNameLen = 2
	MaxCategoryNameLen = 50
)

var (
	ErrCategoryNameTooShort = errors.New("category name must be at least 2 characters")
	ErrCategoryNameTooLong  = errors.New("category name must be max 50 characters")
)

// ValidateCategoryName checks the 2-50 character bound on category names.
func ValidateCategoryName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < MinCategoryNameLen {
		return ErrCategoryNameTooShort
	}
	if length > MaxCategoryNameLen {
		return ErrCategoryNameTooLong
	}
	return nil
}

// ValidateURL checks that raw parses as an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("invalid url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("invalid url")
	}
	return nil
}

// UploadConfig defines constraints for the signed-upload flow.
type UploadConfig struct {
	MaxFileSize      int64
	AllowedMimeTypes map[string]bool
}

// NewUploadConfig builds an UploadConfig from the configured type whitelist.
func NewUploadConfig(maxSize int64, allowedTypes []string) *UploadConfig {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &UploadConfig{
		MaxFileSize:      maxSize,
		AllowedMimeTypes: allowed,
	}
}

// ValidateFileSize checks if the file size is within the allowed limit.
func (c *UploadConfig) ValidateFileSize(size int64) error {
	if size <= 0 {
		return errors.New("file is empty")
	}
	if size > c.MaxFileSize {
		return errors.New("file too large")
	}
	return nil
}

// ValidateMimeType checks if the MIME type is in the allowed whitelist.
func (c *UploadConfig) ValidateMimeType(mimeType string) error {
	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if normalized == "" {
		return errors.New("missing content type")
	}
	// Handle MIME types with parameters (e.g., "text/plain; charset=utf-8")
	if idx := strings.Index(normalized, ";"); idx > 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	if !c.AllowedMimeTypes[normalized] {
		return errors.New("unsupported file type")
	}
	return nil
}
