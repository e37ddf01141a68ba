package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
	"github.com/go-resty/resty/v2"
)

// listPageSize is the largest page the blob API serves per request.
const listPageSize = 1000

// remoteBlobStore is the [BlobStore] backed by an HTTP blob API.
//
//	PUT  <base>/<pathname>          upload (bearer token, no random suffix)
//	GET  <base>?prefix=&limit=&cursor=  list
//	POST <base>/delete {"urls":[...]}   delete
//	GET  <blob url>                 download (public, no token)
type remoteBlobStore struct {
	api      *utils.HTTPClient
	download *utils.HTTPClient
	baseHost string
	now      func() time.Time
	logger   *logger.Logger
}

type putBlobResponse struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

type listBlobsResponse struct {
	Blobs []struct {
		URL        string    `json:"url"`
		Pathname   string    `json:"pathname"`
		Size       int64     `json:"size"`
		UploadedAt time.Time `json:"uploadedAt"`
	} `json:"blobs"`
	Cursor  string `json:"cursor"`
	HasMore bool   `json:"hasMore"`
}

type deleteBlobsRequest struct {
	URLs []string `json:"urls"`
}

// NewRemoteBlobStore constructs a [BlobStore] talking to the blob API at
// cfg.BaseURL.
func NewRemoteBlobStore(cfg config.Blob, logger *logger.Logger) (BlobStore, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("bad blob base url %q", cfg.BaseURL)
	}

	logger.Debug().Str("base_url", cfg.BaseURL).Msg("remote blob store ready")

	return &remoteBlobStore{
		api: utils.NewHTTPClient(utils.HTTPClientOptions{
			BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
			Token:      cfg.Token,
			Timeout:    cfg.RequestTimeout,
			RetryCount: 2,
		}),
		download: utils.NewHTTPClient(utils.HTTPClientOptions{
			Timeout:    cfg.RequestTimeout,
			RetryCount: 2,
		}),
		baseHost: base.Hostname(),
		now:      time.Now,
		logger:   logger,
	}, nil
}

func (s *remoteBlobStore) Put(ctx context.Context, pathname string, data []byte) (models.StoredBlob, error) {
	log := logger.FromContext(ctx)

	if pathname == "" || strings.HasPrefix(pathname, "/") || strings.Contains(pathname, "..") {
		return models.StoredBlob{}, ErrInvalidPathname
	}

	var result putBlobResponse
	resp, err := s.api.R().
		SetContext(ctx).
		SetHeader("x-add-random-suffix", "0").
		SetHeader("Content-Type", http.DetectContentType(data)).
		SetBody(data).
		SetResult(&result).
		Put("/" + escapePathname(pathname))
	if err = checkResponse(ctx, resp, err); err != nil {
		log.Err(err).Str("func", "remoteBlobStore.Put").Str("pathname", pathname).Msg("upload to blob api failed")
		return models.StoredBlob{}, err
	}

	stored := models.StoredBlob{
		URL:        result.URL,
		Pathname:   result.Pathname,
		Size:       int64(len(data)),
		UploadedAt: s.now().UTC(),
	}
	if stored.Pathname == "" {
		stored.Pathname = pathname
	}
	return stored, nil
}

func (s *remoteBlobStore) List(ctx context.Context, prefix string, limit int) ([]models.StoredBlob, error) {
	log := logger.FromContext(ctx)

	blobs := make([]models.StoredBlob, 0)
	cursor := ""
	for {
		pageSize := listPageSize
		if limit > 0 && limit-len(blobs) < pageSize {
			pageSize = limit - len(blobs)
		}

		req := s.api.R().
			SetContext(ctx).
			SetQueryParam("prefix", prefix).
			SetQueryParam("limit", strconv.Itoa(pageSize))
		if cursor != "" {
			req.SetQueryParam("cursor", cursor)
		}

		var page listBlobsResponse
		resp, err := req.SetResult(&page).Get("/")
		if err = checkResponse(ctx, resp, err); err != nil {
			log.Err(err).Str("func", "remoteBlobStore.List").Str("prefix", prefix).Msg("listing blobs failed")
			return nil, err
		}

		for _, b := range page.Blobs {
			blobs = append(blobs, models.StoredBlob{
				URL:        b.URL,
				Pathname:   b.Pathname,
				Size:       b.Size,
				UploadedAt: b.UploadedAt,
			})
		}

		if !page.HasMore || page.Cursor == "" || (limit > 0 && len(blobs) >= limit) {
			return blobs, nil
		}
		cursor = page.Cursor
	}
}

func (s *remoteBlobStore) Delete(ctx context.Context, blobURL string) error {
	if err := s.checkOwnURL(blobURL); err != nil {
		return err
	}

	resp, err := s.api.R().
		SetContext(ctx).
		SetBody(deleteBlobsRequest{URLs: []string{blobURL}}).
		Post("/delete")
	return checkResponse(ctx, resp, err)
}

func (s *remoteBlobStore) Get(ctx context.Context, blobURL string) ([]byte, error) {
	if err := s.checkOwnURL(blobURL); err != nil {
		return nil, err
	}

	resp, err := s.download.R().
		SetContext(ctx).
		Get(blobURL)
	if err = checkResponse(ctx, resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// checkOwnURL keeps the store from fetching or deleting arbitrary hosts.
// Public blob URLs live on subdomains of the API host.
func (s *remoteBlobStore) checkOwnURL(blobURL string) error {
	u, err := url.Parse(blobURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return ErrForeignBlobURL
	}

	host := u.Hostname()
	if host != s.baseHost && !strings.HasSuffix(host, "."+s.baseHost) {
		return ErrForeignBlobURL
	}
	return nil
}

func checkResponse(ctx context.Context, resp *resty.Response, err error) error {
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Join(ErrBlobStoreUnavailable, err)
	}

	switch code := resp.StatusCode(); {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrBlobStoreUnauthorized
	case code == http.StatusNotFound:
		return ErrBlobNotFound
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrBlobStoreUnavailable, code)
	}
}

func escapePathname(pathname string) string {
	segments := strings.Split(pathname, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
