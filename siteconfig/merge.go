package siteconfig

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindColor
)

// field is one leaf of the persisted record.
type field struct {
	path string
	kind fieldKind
	// required leaves fall back to the default when stored as "".
	required bool
}

// recordFields lists every leaf of the persisted record. Only these paths
// are copied from a stored record; anything else in it is ignored.
var recordFields = buildRecordFields()

func buildRecordFields() []field {
	fields := []field{
		{path: "siteName", kind: kindString, required: true},
		{path: "logo.path", kind: kindString},
		{path: "logo.alt", kind: kindString},
		{path: "banner.url", kind: kindString},
		{path: "banner.alt", kind: kindString},
	}
	for _, key := range LinkKeys() {
		prefix := "links." + string(key) + "."
		fields = append(fields,
			field{path: prefix + "internal", kind: kindString, required: true},
			field{path: prefix + "external", kind: kindString},
			field{path: prefix + "useExternal", kind: kindBool},
		)
	}
	for _, role := range Roles() {
		fields = append(fields, field{path: "colors." + string(role), kind: kindColor, required: true})
	}
	return fields
}

func (f field) accepts(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch f.kind {
	case kindBool:
		return v.Type == gjson.True || v.Type == gjson.False
	case kindColor:
		return v.Type == gjson.String && IsHexColor(v.Str)
	default:
		if v.Type != gjson.String {
			return false
		}
		return !f.required || v.Str != ""
	}
}

var errNotObject = errors.New("record is not a JSON object")

// mergeWithDefaults overlays every well-typed leaf present in raw onto the
// defaults. A leaf with the wrong JSON type, or a color that is not
// #RRGGBB, keeps its default. A record that
// is not a JSON object yields the defaults and an error.
func mergeWithDefaults(raw []byte) (SiteConfig, error) {
	if !gjson.ValidBytes(raw) {
		return Default(), errors.New("record is not valid JSON")
	}
	stored := gjson.ParseBytes(raw)
	if !stored.IsObject() {
		return Default(), errNotObject
	}
	merged, err := json.Marshal(Default())
	if err != nil {
		return Default(), err
	}
	for _, f := range recordFields {
		v := stored.Get(f.path)
		if !f.accepts(v) {
			continue
		}
		merged, err = sjson.SetBytes(merged, f.path, v.Value())
		if err != nil {
			return Default(), fmt.Errorf("overlay %s: %w", f.path, err)
		}
	}
	var cfg SiteConfig
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
