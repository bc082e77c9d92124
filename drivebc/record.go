package drivebc

import "strconv"

// Record is one raw item from a DriveBC endpoint: a traffic event or a
// ferry route. Fields are accessed through the typed helpers below; a
// missing, null, or wrong-typed field yields the caller's fallback.
type Record map[string]any

// Str returns the string value for key, or "" when absent or not a string.
func (r Record) Str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// StrOr returns the string value for key, or fallback when absent or empty.
func (r Record) StrOr(key, fallback string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	return fallback
}

// Bool returns the boolean value for key, or false when absent.
func (r Record) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// NumOr renders the numeric value for key, or fallback when the field is
// absent or not a number. JSON numbers decode as float64; integral values
// render without a decimal point.
func (r Record) NumOr(key, fallback string) string {
	switch v := r[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if v != "" {
			return v
		}
	}
	return fallback
}

// Map returns the nested object for key, or nil when absent.
func (r Record) Map(key string) Record {
	if v, ok := r[key].(map[string]any); ok {
		return Record(v)
	}
	return nil
}

// List returns the array value for key, or nil when absent.
func (r Record) List(key string) []any {
	if v, ok := r[key].([]any); ok {
		return v
	}
	return nil
}

// Records returns the array of objects for key, skipping non-object members.
func (r Record) Records(key string) []Record {
	items := r.List(key)
	if len(items) == 0 {
		return nil
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Strings returns the array of strings for key, skipping non-string members.
func (r Record) Strings(key string) []string {
	items := r.List(key)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
