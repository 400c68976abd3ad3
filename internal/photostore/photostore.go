// Package photostore keeps passenger photos on the local filesystem or in an
// S3-compatible bucket.
package photostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Domenick1991/dorado/config"
)

var ErrInvalidKey = errors.New("invalid photo key")

type Object struct {
	Key     string
	ModTime time.Time
}

type Store interface {
	// Save writes r under key and returns the public URL of the photo.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	// Delete removes key. A missing object is not an error.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Object, error)
}

// ObjectKey names an upload "<unix-millis>-<filename>", keeping only the
// base name of what the client sent. Anything other than letters, digits,
// '.', '-' and '_' becomes '_' so the key is a single clean URL segment.
func ObjectKey(now time.Time, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "photo"
	}
	base = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, base)
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + base
}

// objectURL joins a public base and a key, escaping the key as one path
// segment.
func objectURL(base, key string) string {
	return base + "/" + url.PathEscape(key)
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, "/\\") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func New(ctx context.Context, cfg config.PhotosConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.Dir, cfg.PublicPath)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown photo store driver %q", cfg.Driver)
	}
}
