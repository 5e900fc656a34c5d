package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/polkiloo/streakmart/internal/domain/model"
)

// ErrProductNotFound indicates the upstream catalog has no such product.
var ErrProductNotFound = errors.New("product not found")

// ErrUpstream wraps any other upstream catalog failure.
var ErrUpstream = errors.New("catalog upstream error")

// Client exposes read operations against the external product catalog. The
// storefront never stores products: every read passes through.
type Client interface {
	List(ctx context.Context, limit, skip int) (*model.ProductPage, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Search(ctx context.Context, query string) (*model.ProductPage, error)
}

// HTTPClient implements Client over the catalog's JSON API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// productPayload mirrors one product of the upstream JSON.
type productPayload struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
}

// pagePayload mirrors the upstream listing envelope.
type pagePayload struct {
	Products []productPayload `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// NewHTTPClient creates an HTTP catalog client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// List fetches one page of the catalog.
func (c *HTTPClient) List(ctx context.Context, limit, skip int) (*model.ProductPage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	return c.fetchPage(ctx, "/products", query)
}

// Get fetches a single product by its upstream identifier.
func (c *HTTPClient) Get(ctx context.Context, id int64) (*model.Product, error) {
	body, err := c.do(ctx, path.Join("/products", strconv.FormatInt(id, 10)), nil)
	if err != nil {
		return nil, err
	}

	var data productPayload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode product: %v", ErrUpstream, err)
	}
	product := toProduct(data)
	return &product, nil
}

// Search fetches products matching the query string.
func (c *HTTPClient) Search(ctx context.Context, q string) (*model.ProductPage, error) {
	query := url.Values{}
	query.Set("q", q)
	return c.fetchPage(ctx, "/products/search", query)
}

func (c *HTTPClient) fetchPage(ctx context.Context, endpoint string, query url.Values) (*model.ProductPage, error) {
	body, err := c.do(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	var data pagePayload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode page: %v", ErrUpstream, err)
	}

	page := &model.ProductPage{
		Products: make([]model.Product, 0, len(data.Products)),
		Total:    data.Total,
		Skip:     data.Skip,
		Limit:    data.Limit,
	}
	for _, p := range data.Products {
		page.Products = append(page.Products, toProduct(p))
	}
	return page, nil
}

func (c *HTTPClient) do(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)
	if query != nil {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", slog.String("url", target.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, ErrProductNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}
}

func toProduct(p productPayload) model.Product {
	return model.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		Thumbnail:   p.Thumbnail,
		Images:      p.Images,
	}
}
