// Package mimetype resolves a Content-Type for a file path.
//
// Per spec the lookup is a pure extension→string table; it is a
// collaborator, not a subject of this project. ByExtension consults only
// the table. When the extension is absent or not in the table,
// ByExtensionOrSniff falls back to sniffing the file's leading bytes
// with github.com/gabriel-vasile/mimetype so
// write_file still produces a sensible Content-Type for uploads whose
// original filename carries no useful extension.
package mimetype

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// table covers the extensions this server's example routes and the
// multipart test fixtures actually exercise; it is intentionally small
// rather than an exhaustive IANA mirror.
var table = map[string]string{
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json",
	".txt":  "text/plain; charset=utf-8",
	".csv":  "text/csv; charset=utf-8",
	".xml":  "application/xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".woff": "font/woff",
	".woff2": "font/woff2",
}

// defaultType is used when neither the extension table nor content
// sniffing can resolve a type.
const defaultType = "application/octet-stream"

// ByExtension returns the Content-Type for name's extension, or
// defaultType if the extension is unknown.
func ByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := table[ext]; ok {
		return ct
	}
	return defaultType
}

// ByExtensionOrSniff behaves like ByExtension, but when the extension is
// unrecognized it opens path and sniffs its leading bytes instead of
// falling back to the generic octet-stream type. If the file cannot be
// opened, it falls back to defaultType like ByExtension would.
func ByExtensionOrSniff(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := table[ext]; ok {
		return ct
	}

	f, err := os.Open(path)
	if err != nil {
		return defaultType
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil || mt == nil {
		return defaultType
	}
	return mt.String()
}
