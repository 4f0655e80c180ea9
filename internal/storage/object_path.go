package storage

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

// sanitizePathSegment lowercases the value and keeps alphanumeric, dash and
// underscore characters only.
func sanitizePathSegment(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, strings.TrimSpace(value))
}

func normalizeExtension(ext string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return "bin"
	}
	return sanitizePathSegment(trimmed)
}

// buildObjectPath produces a relative object key like
// avatars/2026/08/29/<base>.<ext>. An empty base name falls back to a
// nanosecond timestamp so uploads never collide on name.
func buildObjectPath(category, baseName, ext string) string {
	now := time.Now().UTC()

	category = sanitizePathSegment(category)
	if category == "" {
		category = "avatars"
	}

	base := strings.Trim(sanitizePathSegment(strings.ReplaceAll(strings.TrimSpace(baseName), " ", "-")), "-_")
	if base == "" {
		base = fmt.Sprintf("%d", now.UnixNano())
	}

	return path.Join(
		category,
		fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day()),
		base+"."+normalizeExtension(ext),
	)
}

func detectContentType(ext string) string {
	if typeName := mime.TypeByExtension("." + normalizeExtension(ext)); typeName != "" {
		return typeName
	}
	return "application/octet-stream"
}

// joinPrefix prepends the configured bucket prefix, tolerating stray slashes
// on either side.
func joinPrefix(prefix, key string) string {
	cleanPrefix := trimPrefix(prefix)
	key = strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return key
	}
	return path.Join(cleanPrefix, key)
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}
