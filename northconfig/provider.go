// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=provider.go -destination=../internal/mock/provider_mock.go -package=mock

package northconfig

import "context"

// Provider produces a configuration document on demand. Implementations own
// their state; the same provider may be shared by many resolutions.
//
// The returned value may be any Go value that encodes to JSON: maps, slices,
// scalars or structs with json tags. Only objects are merged.
type Provider interface {
	ConfigValue(ctx context.Context) (any, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (any, error)

// ConfigValue calls f(ctx).
func (f ProviderFunc) ConfigValue(ctx context.Context) (any, error) {
	return f(ctx)
}

// Static returns a provider that always yields doc.
func Static(doc any) Provider {
	return ProviderFunc(func(context.Context) (any, error) {
		return doc, nil
	})
}
