// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package northconfig

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// decode fills out from a merged document. Durations are read from strings
// like "5s", comma-separated strings fill slices, and types implementing
// encoding.TextUnmarshaler decode themselves.
func decode(doc any, out any, opts Options) error {
	tag := opts.TagName
	if tag == "" {
		tag = DefaultTagName
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		TagName:          tag,
		WeaklyTypedInput: !opts.StrictTypes,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
