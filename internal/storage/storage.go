// Package storage reads and writes the site's JSON documents.
//
// Two sources exist: LocalStorage, a directory on disk used in development
// and for static hosting, and R2Storage, a Cloudflare R2 bucket reached
// through the S3 API. The content loader only reads; Put is used by
// `sitectl publish` to upload a checked directory to the bucket.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
)

// Source names accepted by DATA_PROVIDER.
const (
	ProviderLocal = "local"
	ProviderR2    = "r2"
)

// Storage is a flat key space of documents. Errors wrap the sentinels of
// errors.go in a *StorageError.
type Storage interface {
	// Get opens the document at key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Put writes data at key. It fails with ErrKeyExists when the key is
	// taken and opts.Overwrite is false.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Exists reports whether key holds a document.
	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions controls a write.
type PutOptions struct {
	// ContentType defaults to the type guessed from the key's extension.
	ContentType string
	// MaxSize rejects larger bodies with ErrTooLarge. Zero means no limit.
	MaxSize   int64
	Overwrite bool
}

// ObjectInfo describes a document as the source reports it.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string // R2 only
}

// LocalConfig configures LocalStorage.
type LocalConfig struct {
	// BasePath is the documents directory, e.g. "./web/data".
	BasePath string

	// Create makes the directory when missing. Readers leave it false so a
	// mistyped path surfaces as missing documents instead of an empty folder.
	Create bool
}

// R2Config configures R2Storage.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string

	// Prefix is prepended to every key, e.g. "site/" for "site/pages.json".
	Prefix string

	// Region defaults to "auto", the only region R2 knows.
	Region string

	// Endpoint overrides the account endpoint, e.g. for a local S3 emulator.
	Endpoint string
}

// DocumentKey returns the key of a named document: "services" is stored as
// "services.json".
func DocumentKey(name string) string {
	return name + ".json"
}

func joinPrefix(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}
