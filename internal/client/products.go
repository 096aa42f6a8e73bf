package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go-couture-api/internal/pkg/apperror"
	"go-couture-api/internal/product"
)

func filterQuery(f product.Filter) url.Values {
	q := url.Values{}
	if f.Category != "" && f.Category != "all" {
		q.Set("category", f.Category)
	}
	if f.OnlyInStock {
		q.Set("in_stock", "true")
	}
	if f.OnlyFeatured {
		q.Set("featured", "true")
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Sort != "" {
		q.Set("sort", string(f.Sort))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// Products lists the storefront catalog.
func (c *Client) Products(ctx context.Context, f product.Filter) ([]product.Product, error) {
	var out []product.Product
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/products", query: filterQuery(f)}, &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, id string) (product.Product, error) {
	var out product.Product
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/products/" + url.PathEscape(id)}, &out)
	return out, err
}

// PublicProducts reads the bare-array endpoint used by third parties.
func (c *Client) PublicProducts(ctx context.Context, category string, limit int) ([]product.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.send(ctx, call{method: http.MethodGet, path: "/api/products", query: q})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error != "" {
			return nil, apperror.New(apperror.CodeInternalError, body.Error, resp.StatusCode)
		}
		return nil, statusError(resp.StatusCode)
	}

	var out []product.Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return out, nil
}

// List is the admin listing, including out of stock products.
func (c *Client) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	if f.Limit == 0 {
		f.Limit = 100
	}
	var out []product.Product
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/admin/products", query: filterQuery(f), admin: true}, &out)
	return out, err
}

// AdminProduct reads one product regardless of stock.
func (c *Client) AdminProduct(ctx context.Context, id string) (product.Product, error) {
	var out product.Product
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/admin/products/" + url.PathEscape(id), admin: true}, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, in product.Input) (product.Product, error) {
	cl, err := jsonCall(http.MethodPost, "/api/v1/admin/products", in)
	if err != nil {
		return product.Product{}, err
	}
	cl.admin = true
	var out product.Product
	_, err = c.do(ctx, cl, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id string, in product.Input) (product.Product, error) {
	cl, err := jsonCall(http.MethodPut, "/api/v1/admin/products/"+url.PathEscape(id), in)
	if err != nil {
		return product.Product{}, err
	}
	cl.admin = true
	var out product.Product
	_, err = c.do(ctx, cl, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: "/api/v1/admin/products/" + url.PathEscape(id), admin: true}, nil)
	return err
}

func (c *Client) Stats(ctx context.Context) (product.Stats, error) {
	var out product.Stats
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/admin/stats", admin: true}, &out)
	return out, err
}
