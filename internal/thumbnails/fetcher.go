package thumbnails

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"twitch/internal/catalog"
	"twitch/internal/fileutil"
	"twitch/internal/logging"
)

// ErrNoImage indicates a game has no usable icon URL.
var ErrNoImage = errors.New("no image url")

// maxImageBytes bounds a single download.
const maxImageBytes = 16 << 20

// Result is the outcome for one game.
type Result struct {
	ASIN   string
	Title  string
	Path   string
	Bytes  int64
	Reused bool
	Err    error
}

// Fetcher downloads icons with a bounded number of concurrent requests.
type Fetcher struct {
	client      *http.Client
	dir         string
	concurrency int
	logger      *slog.Logger
}

// NewFetcher returns a Fetcher writing into dir.
func NewFetcher(dir string, timeout time.Duration, concurrency int, logger *slog.Logger) *Fetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Fetcher{
		client:      &http.Client{Timeout: timeout},
		dir:         dir,
		concurrency: concurrency,
		logger:      logging.NewComponentLogger(logger, "thumbnails"),
	}
}

// FileName returns the local file name for an icon URL.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%q: %w", rawURL, ErrNoImage)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("%q has no file name: %w", rawURL, ErrNoImage)
	}
	return name, nil
}

// FetchAll downloads the icon of every game and returns one result per game in
// input order.
func (f *Fetcher) FetchAll(ctx context.Context, games []catalog.Game) []Result {
	results := make([]Result, len(games))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, game := range games {
		g.Go(func() error {
			results[i] = f.Fetch(gctx, game)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Fetch downloads a single icon unless the file already exists.
func (f *Fetcher) Fetch(ctx context.Context, game catalog.Game) Result {
	res := Result{ASIN: game.ASIN, Title: game.Title}
	logger := logging.WithContext(ctx, f.logger).With(logging.String(logging.FieldASIN, game.ASIN))

	if strings.TrimSpace(game.ImageURL) == "" {
		res.Err = ErrNoImage
		return res
	}
	name, err := FileName(game.ImageURL)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = filepath.Join(f.dir, name)

	if info, err := os.Stat(res.Path); err == nil && info.Size() > 0 {
		res.Reused = true
		res.Bytes = info.Size()
		return res
	}

	n, err := f.download(ctx, game.ImageURL, res.Path)
	if err != nil {
		res.Err = err
		logging.WarnWithContext(logger, "thumbnail download failed", "thumbnail_failed",
			logging.String(logging.FieldTitle, game.Title),
			logging.String("url", game.ImageURL),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "re-run twitch images later"),
			logging.String(logging.FieldImpact, "title shown without artwork"),
		)
		return res
	}
	res.Bytes = n
	logger.Debug("thumbnail downloaded", logging.String(logging.FieldPath, res.Path), logging.Int64("bytes", n))
	return res
}

func (f *Fetcher) download(ctx context.Context, rawURL, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("get %s: unexpected status %s", rawURL, resp.Status)
	}

	n, err := fileutil.CopyToFileAtomic(dest, io.LimitReader(resp.Body, maxImageBytes), 0o644)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", dest, err)
	}
	return n, nil
}
