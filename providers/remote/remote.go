// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package remote serves configuration documents fetched over HTTP.
//
// The document format follows the Content-Type of the response (JSON, YAML,
// TOML or RON) and falls back to the extension of the URL path, then to
// JSON. A failed request surfaces as an error, which a custom source logs
// and skips.
package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/north-config/internal/parser"
)

const DefaultTimeout = 15 * time.Second

const accept = "application/json, application/yaml, application/toml, application/ron;q=0.9, */*;q=0.5"

// Provider fetches one URL per resolution. It implements
// northconfig.Provider.
type Provider struct {
	client  *resty.Client
	url     string
	format  string
	headers map[string]string
}

// Option configures a Provider.
type Option func(*Provider)

// WithTimeout bounds every request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.client.SetTimeout(d)
		}
	}
}

// WithHeader adds a request header, e.g. Authorization.
func WithHeader(key, value string) Option {
	return func(p *Provider) {
		p.headers[key] = value
	}
}

// WithFormat forces the document format ("json", "yaml", "toml", "ron")
// regardless of the response headers.
func WithFormat(name string) Option {
	return func(p *Provider) {
		p.format = name
	}
}

// WithRetries retries failed requests up to count times with resty's
// backoff.
func WithRetries(count int) Option {
	return func(p *Provider) {
		p.client.SetRetryCount(count)
	}
}

// New returns a provider for rawURL.
func New(rawURL string, opts ...Option) *Provider {
	p := &Provider{
		client:  resty.New().SetTimeout(DefaultTimeout),
		url:     strings.TrimSpace(rawURL),
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ConfigValue downloads and parses the document.
func (p *Provider) ConfigValue(ctx context.Context) (any, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", accept).
		SetHeaders(p.headers).
		Get(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	format, err := p.formatOf(resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	doc, err := parser.Parse(format, resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return doc, nil
}

func (p *Provider) formatOf(contentType string) (parser.Format, error) {
	if p.format != "" {
		f, err := parser.ParseFormat(p.format)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrFormat, err)
		}
		return f, nil
	}

	if f, ok := parser.FromContentType(contentType); ok {
		return f, nil
	}

	if u, err := url.Parse(p.url); err == nil {
		return parser.FromPath(u.Path), nil
	}
	return parser.JSON, nil
}
