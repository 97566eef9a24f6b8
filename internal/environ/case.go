// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package environ

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/MKhiriev/north-config/models"
)

// ConvertCase rewrites a single key segment, e.g. SOME_THING becomes
// some_thing under [models.CaseSnake].
func ConvertCase(segment string, c models.Case) string {
	switch c.OrDefault() {
	case models.CaseSnake:
		return strcase.ToSnake(segment)
	case models.CaseCamel:
		return strcase.ToLowerCamel(segment)
	case models.CasePascal:
		return strcase.ToCamel(segment)
	case models.CaseKebab:
		return strcase.ToKebab(segment)
	case models.CaseScreamingSnake:
		return strcase.ToScreamingSnake(segment)
	case models.CaseScreamingKebab:
		return strcase.ToScreamingKebab(segment)
	case models.CaseLower:
		return strings.ToLower(segment)
	case models.CaseUpper:
		return strings.ToUpper(segment)
	case models.CaseFlat:
		return strings.ReplaceAll(strcase.ToSnake(segment), "_", "")
	case models.CaseUpperFlat:
		return strings.ReplaceAll(strcase.ToScreamingSnake(segment), "_", "")
	default:
		return segment
	}
}
