package sitebuild

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/DukeRupert/tenebreuse/internal/content"
	"github.com/DukeRupert/tenebreuse/internal/storage"
)

// MaxDocumentSize caps a published document.
const MaxDocumentSize = 4 << 20

// PublishResult lists the keys copied and the optional documents the source
// did not have.
type PublishResult struct {
	Published []string
	Skipped   []string
}

// Publish copies every document from src to dst. A document missing from src
// is skipped, except the site document. Existing keys are replaced only when
// overwrite is set.
func Publish(ctx context.Context, src, dst storage.Storage, overwrite bool, logger *slog.Logger) (*PublishResult, error) {
	res := &PublishResult{}
	for _, name := range content.Names() {
		key := name.Key()

		data, err := readDocument(ctx, src, key)
		if storage.IsNotFound(err) && name != content.Site {
			res.Skipped = append(res.Skipped, key)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("read %s: %w", key, err)
		}
		if !json.Valid(data) {
			return res, fmt.Errorf("%s is not valid JSON", key)
		}

		err = dst.Put(ctx, key, bytes.NewReader(data), storage.PutOptions{
			ContentType: "application/json",
			MaxSize:     MaxDocumentSize,
			Overwrite:   overwrite,
		})
		if err != nil {
			return res, fmt.Errorf("publish %s: %w", key, err)
		}
		res.Published = append(res.Published, key)
		logger.Info("document published", "key", key, "bytes", len(data))
	}
	return res, nil
}

func readDocument(ctx context.Context, src storage.Storage, key string) ([]byte, error) {
	rc, _, err := src.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, MaxDocumentSize+1))
}
