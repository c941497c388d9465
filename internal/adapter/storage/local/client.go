// Package local хранит загруженные изображения в плоском каталоге на диске.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
)

// ErrInvalidKey возвращается для ключей, выходящих за пределы каталога.
var ErrInvalidKey = errors.New("invalid blob key")

// Client — Blob Store в каталоге dir. Файл пишется во временный файл и
// переименовывается, так что читатель никогда не видит частично записанный blob.
type Client struct {
	dir    string
	logger *slog.Logger
}

var _ ports.FileStorage = (*Client)(nil)

// NewClient создаёт каталог dir при необходимости.
func NewClient(dir string, logger *slog.Logger) (*Client, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir %s: %w", dir, err)
	}
	logger.Info("local blob storage ready", "dir", dir)
	return &Client{dir: dir, logger: logger}, nil
}

func (c *Client) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(c.dir, key), nil
}

func (c *Client) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	start := time.Now()

	dst, err := c.path(key)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(c.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, readerWithContext(ctx, reader))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("rename blob %s: %w", key, err)
	}

	c.logger.Info("blob stored",
		"key", key,
		"bytes", n,
		"content_type", contentType,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return key, nil
}

func (c *Client) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := c.path(key)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", key, err)
	}
	return f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
