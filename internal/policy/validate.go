package policy

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
)

// Validate checks fields against the schema of policyType and returns the typed block
// with defaults applied. Unknown policy types fail with *UnsupportedTypeError; malformed
// blocks of a known type fail with *SchemaValidationError.
func Validate(policyType string, fields map[string]any) (Block, error) {
	t, err := ParseType(policyType)
	if err != nil {
		return nil, err
	}
	return ValidateType(t, fields)
}

// ValidateType is Validate for an already parsed type.
func ValidateType(t Type, fields map[string]any) (Block, error) {
	s, ok := schemas[t]
	if !ok {
		return nil, &UnsupportedTypeError{PolicyType: string(t)}
	}

	verr := &SchemaValidationError{PolicyType: t}
	normalized := s.walk(fields, "", verr)
	if !verr.empty() {
		return nil, verr
	}

	block := newBlock(t)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      block,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s decoder: %w", t, err)
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, fmt.Errorf("failed to decode %s policy: %w", t, err)
	}
	return block, nil
}

// ValidateAll validates every entry of configs (keyed by policy type name) and returns
// the resulting set. All failures are reported together, in key order.
func ValidateAll(configs map[string]map[string]any) (Set, error) {
	keys := make([]string, 0, len(configs))
	for k := range configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		set  Set
		errs []error
		seen = make(map[Type]string, len(keys))
	)
	for _, key := range keys {
		t, err := ParseType(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, dup := seen[t]; dup {
			errs = append(errs, fmt.Errorf("%w: %q and %q both configure %s", ErrDuplicateType, prev, key, t))
			continue
		}
		seen[t] = key

		block, err := ValidateType(t, configs[key])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set.Put(block)
	}

	if len(errs) > 0 {
		return Set{}, errors.Join(errs...)
	}
	return set, nil
}

func newBlock(t Type) Block {
	switch t {
	case TypeContent:
		return &ContentPolicy{}
	case TypeContextualGrounding:
		return &ContextualGroundingPolicy{}
	case TypeSensitiveInformation:
		return &SensitiveInformationPolicy{}
	case TypeTopic:
		return &TopicPolicy{}
	case TypeWord:
		return &WordPolicy{}
	}
	return nil
}

func (s *schema) has(name string) bool {
	for _, f := range s.fields {
		if f.name == name {
			return true
		}
	}
	return false
}

// walk validates obj and returns its normalized copy. Problems are appended to verr with
// paths prefixed by path.
func (s *schema) walk(obj map[string]any, path string, verr *SchemaValidationError) map[string]any {
	before := verr.count()
	out := make(map[string]any, len(s.fields))

	var unknown []string
	for k := range obj {
		if !s.has(k) {
			unknown = append(unknown, path+k)
		}
	}
	sort.Strings(unknown)
	verr.UnknownFields = append(verr.UnknownFields, unknown...)

	for _, f := range s.fields {
		raw, ok := obj[f.name]
		if !ok || isEmpty(raw) {
			if f.required {
				verr.MissingFields = append(verr.MissingFields, path+f.name)
			}
			continue
		}
		if v, ok := f.normalize(raw, path+f.name, verr); ok {
			out[f.name] = v
		}
	}

	if len(s.anyOf) > 0 && !slices.ContainsFunc(s.anyOf, func(name string) bool { return out[name] != nil }) {
		verr.MissingFields = append(verr.MissingFields, path+s.anyOf[0])
	}

	for _, f := range s.fields {
		if _, ok := out[f.name]; !ok && f.def != nil {
			out[f.name] = f.def(out)
		}
	}

	if s.check != nil && verr.count() == before {
		verr.InvalidFields = append(verr.InvalidFields, s.check(out, path)...)
	}
	return out
}

func (f field) normalize(raw any, path string, verr *SchemaValidationError) (any, bool) {
	invalid := func(reason string) (any, bool) {
		verr.InvalidFields = append(verr.InvalidFields, path+": "+reason)
		return nil, false
	}

	switch f.kind {
	case kindString:
		str, ok := raw.(string)
		if !ok {
			return invalid("must be a " + f.kind.String())
		}
		str = strings.TrimSpace(str)
		if f.enum != nil {
			return f.enumValue(str, path, verr)
		}
		if f.maxLen > 0 && utf8.RuneCountInString(str) > f.maxLen {
			return invalid(fmt.Sprintf("must be at most %d characters", f.maxLen))
		}
		return str, true

	case kindBool:
		b, ok := raw.(bool)
		if !ok {
			return invalid("must be a " + f.kind.String())
		}
		return b, true

	case kindNumber:
		n, ok := toFloat(raw)
		if !ok {
			return invalid("must be a " + f.kind.String())
		}
		if (f.min != nil && n < *f.min) || (f.max != nil && n > *f.max) {
			return invalid(fmt.Sprintf("must be between %g and %g", *f.min, *f.max))
		}
		return n, true

	case kindStringList:
		items, ok := toList(raw)
		if !ok {
			return invalid("must be a " + f.kind.String())
		}
		values := make([]string, 0, len(items))
		clean := true
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			str, ok := item.(string)
			if !ok {
				verr.InvalidFields = append(verr.InvalidFields, itemPath+": must be a string")
				clean = false
				continue
			}
			if f.enum != nil {
				v, ok := f.enumValue(strings.TrimSpace(str), itemPath, verr)
				if !ok {
					clean = false
					continue
				}
				str = v.(string)
			}
			values = append(values, str)
		}
		return values, clean

	case kindObjectList:
		items, ok := toList(raw)
		if !ok {
			return invalid("must be a " + f.kind.String())
		}
		values := make([]any, 0, len(items))
		for i, item := range items {
			prefix := fmt.Sprintf("%s[%d].", path, i)
			obj, ok := item.(map[string]any)
			if !ok {
				verr.InvalidFields = append(verr.InvalidFields, strings.TrimSuffix(prefix, ".")+": must be an object")
				continue
			}
			values = append(values, f.elem.walk(obj, prefix, verr))
		}
		return values, true
	}
	return invalid("unsupported field kind")
}

func (f field) enumValue(str, path string, verr *SchemaValidationError) (any, bool) {
	upper := strings.ToUpper(str)
	if slices.Contains(f.enum, upper) {
		return upper, true
	}
	verr.InvalidFields = append(verr.InvalidFields, fmt.Sprintf("%s: %q is not one of %s", path, str, strings.Join(f.enum, ", ")))
	return nil, false
}

func (e *SchemaValidationError) count() int {
	return len(e.MissingFields) + len(e.UnknownFields) + len(e.InvalidFields)
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case []map[string]any:
		return len(x) == 0
	}
	return false
}

func toList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return items, true
	case []map[string]any:
		items := make([]any, len(x))
		for i, m := range x {
			items[i] = m
		}
		return items, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
