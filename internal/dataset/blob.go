package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/insights-cli/internal/model"
)

// BlobSource fetches datasets from a remote blob store over HTTP,
// addressed as {baseURL}/{key}.json. Requests are rate limited.
type BlobSource struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewBlobSource creates a BlobSource. A nil client gets a default with the
// given timeout.
func NewBlobSource(baseURL string, client *http.Client, rps float64, burst int, timeout time.Duration) *BlobSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if rps <= 0 {
		rps = 4
	}
	if burst <= 0 {
		burst = 8
	}
	return &BlobSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name implements Source.
func (s *BlobSource) Name() string { return "blob:" + s.baseURL }

// Load implements Source.
func (s *BlobSource) Load(ctx context.Context, key string) (*model.RawDataset, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "blob: rate limit wait")
	}

	url := fmt.Sprintf("%s/%s.json", s.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "blob: build request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "blob: fetch %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("blob: fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "blob: read %s", url)
	}

	ds, err := Decode(body)
	if err != nil {
		return nil, eris.Wrapf(err, "blob: decode %s", url)
	}

	zap.L().Debug("blob: fetched dataset",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
	)
	return ds, nil
}
