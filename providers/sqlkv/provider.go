// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/north-config/internal/logger"
	"github.com/MKhiriev/north-config/value"
)

const (
	DefaultTable     = "config_entries"
	DefaultNamespace = "default"
)

var (
	ErrNilDB  = errors.New("sqlkv: db is nil")
	ErrBadKey = errors.New("sqlkv: malformed key")
	ErrQuery  = errors.New("sqlkv: query failed")
	ErrEncode = errors.New("sqlkv: cannot encode value")
)

// Provider reads one namespace of the key/value table. It implements
// northconfig.Provider.
type Provider struct {
	db          *sql.DB
	table       string
	namespace   string
	placeholder sq.PlaceholderFormat
	rawValues   bool
	logger      *logger.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithNamespace selects the namespace to read. Empty keeps the default.
func WithNamespace(ns string) Option {
	return func(p *Provider) {
		if ns != "" {
			p.namespace = ns
		}
	}
}

// WithTable overrides the table name.
func WithTable(table string) Option {
	return func(p *Provider) {
		if table != "" {
			p.table = table
		}
	}
}

// WithDriver picks the placeholder style matching a database/sql driver
// name.
func WithDriver(driver string) Option {
	return func(p *Provider) {
		p.placeholder = PlaceholderFor(driver)
	}
}

// WithRawValues keeps every value as the stored text instead of parsing it
// as a JSON literal.
func WithRawValues() Option {
	return func(p *Provider) {
		p.rawValues = true
	}
}

// WithLogger sets the logger used for skipped rows.
func WithLogger(l *zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger.Wrap(l)
	}
}

// New returns a provider reading from db. Placeholders default to "?".
func New(db *sql.DB, opts ...Option) *Provider {
	p := &Provider{
		db:          db,
		table:       DefaultTable,
		namespace:   DefaultNamespace,
		placeholder: sq.Question,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ConfigValue selects the rows of the namespace and assembles them into a
// document. An empty namespace yields an empty object.
func (p *Provider) ConfigValue(ctx context.Context) (any, error) {
	if p.db == nil {
		return nil, ErrNilDB
	}

	query, args, err := sq.Select("key", "value").
		From(p.table).
		Where(sq.Eq{"namespace": p.namespace}).
		OrderBy("key").
		PlaceholderFormat(p.placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	var doc any = make(map[string]any)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQuery, err)
		}

		if !validKey(key) {
			p.logger.Warn().Err(ErrBadKey).Str("key", key).Str("namespace", p.namespace).Msg("row skipped")
			continue
		}

		var v any = raw
		if !p.rawValues {
			v = value.ParseLiteral(raw)
		}
		doc = value.DotSet(doc, key, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return doc, nil
}

// Put stores v under key, replacing any previous value. v is stored as JSON
// unless the provider uses raw values and v is a string.
func (p *Provider) Put(ctx context.Context, key string, v any) error {
	if p.db == nil {
		return ErrNilDB
	}
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrBadKey, key)
	}

	stored, err := p.encode(v)
	if err != nil {
		return err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer func() { _ = tx.Rollback() }()

	del, delArgs, err := sq.Delete(p.table).
		Where(sq.Eq{"namespace": p.namespace, "key": key}).
		PlaceholderFormat(p.placeholder).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if _, err := tx.ExecContext(ctx, del, delArgs...); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}

	ins, insArgs, err := sq.Insert(p.table).
		Columns("namespace", "key", "value").
		Values(p.namespace, key, stored).
		PlaceholderFormat(p.placeholder).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if _, err := tx.ExecContext(ctx, ins, insArgs...); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return nil
}

func (p *Provider) encode(v any) (string, error) {
	if s, ok := v.(string); ok && p.rawValues {
		return s, nil
	}

	n, err := value.Normalize(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	data, err := sonic.ConfigStd.MarshalToString(n)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

func validKey(key string) bool {
	return key != "" && !slices.Contains(strings.Split(key, "."), "")
}
