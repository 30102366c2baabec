package entities

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// Fields holds the keys of a stored record that the model does not carry.
// Unknown keys, and known keys whose stored value the model could not hold
// (a mistyped value, or an empty or null value the encoder would omit),
// are kept raw and written back untouched on save.
type Fields map[string]json.RawMessage

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	extra, err := decodeRecord(data, &p)
	if err != nil {
		return err
	}

	// Keep the numeric progress entries usable when only some of them are mistyped.
	if raw, ok := extra["progressoCursos"]; ok && len(p.ProgressByCourse) == 0 {
		if progress, rest, ok := splitProgress(raw); ok && len(rest) > 0 {
			p.ProgressByCourse = progress
			p.rawProgress = rest
			delete(extra, "progressoCursos")
		}
	}

	if len(extra) == 0 {
		extra = nil
	}
	p.Extra = extra
	*u = User(p)
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	p := plain(u)
	extra := u.Extra
	if len(u.rawProgress) > 0 {
		progress, err := json.Marshal(p.ProgressByCourse)
		if err != nil {
			return nil, err
		}
		if len(p.ProgressByCourse) == 0 {
			progress = []byte("{}")
		}
		merged, err := appendFields(progress, u.rawProgress)
		if err != nil {
			return nil, err
		}
		extra = make(Fields, len(u.Extra)+1)
		for k, v := range u.Extra {
			extra[k] = v
		}
		extra["progressoCursos"] = merged
		p.ProgressByCourse = nil
	}
	return MergeJSON(p, extra)
}

func (l *Lesson) UnmarshalJSON(data []byte) error {
	type plain Lesson
	var p plain
	extra, err := decodeRecord(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*l = Lesson(p)
	return nil
}

func (l Lesson) MarshalJSON() ([]byte, error) {
	type plain Lesson
	return MergeJSON(plain(l), l.Extra)
}

func (c *Course) UnmarshalJSON(data []byte) error {
	type plain Course
	var p plain
	extra, err := decodeRecord(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*c = Course(p)
	return nil
}

func (c Course) MarshalJSON() ([]byte, error) {
	type plain Course
	return MergeJSON(plain(c), c.Extra)
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	var p plain
	extra, err := decodeRecord(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*c = Comment(p)
	return nil
}

func (c Comment) MarshalJSON() ([]byte, error) {
	type plain Comment
	return MergeJSON(plain(c), c.Extra)
}

func (c *Certificate) UnmarshalJSON(data []byte) error {
	type plain Certificate
	var p plain
	extra, err := decodeRecord(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*c = Certificate(p)
	return nil
}

func (c Certificate) MarshalJSON() ([]byte, error) {
	type plain Certificate
	return MergeJSON(plain(c), c.Extra)
}

// MergeJSON encodes the struct v field by field and then appends the extra
// keys in sorted order. A field that is still empty is written from extra
// when extra holds a value for it; otherwise the field's own value wins.
func MergeJSON(v interface{}, extra Fields) ([]byte, error) {
	rv := reflect.ValueOf(v)
	t := rv.Type()

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value []byte) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if len(value) == 0 {
			value = []byte("null")
		}
		buf.Write(value)
		return nil
	}

	known := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, omitEmpty, ok := jsonField(t.Field(i))
		if !ok {
			continue
		}
		known[name] = struct{}{}

		field := rv.Field(i)
		if raw, ok := extra[name]; ok && isEmptyValue(field) {
			if err := write(name, raw); err != nil {
				return nil, err
			}
			continue
		}
		if omitEmpty && isEmptyValue(field) {
			continue
		}
		value, err := json.Marshal(field.Interface())
		if err != nil {
			return nil, err
		}
		if err := write(name, value); err != nil {
			return nil, err
		}
	}

	for _, k := range sortedKeys(extra) {
		if _, ok := known[k]; ok {
			continue
		}
		if err := write(k, extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeRecord fills the struct behind dst one field at a time. Only a record
// that is not a JSON object is an error; anything the fields cannot hold is
// returned as extra.
func decodeRecord(data []byte, dst interface{}) (Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var extra Fields
	keep := func(key string, value json.RawMessage) {
		if extra == nil {
			extra = make(Fields)
		}
		extra[key] = value
	}

	rv := reflect.ValueOf(dst).Elem()
	t := rv.Type()
	known := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, omitEmpty, ok := jsonField(t.Field(i))
		if !ok {
			continue
		}
		known[name] = struct{}{}

		value, present := raw[name]
		if !present {
			continue
		}

		field := rv.Field(i)
		if err := json.Unmarshal(value, field.Addr().Interface()); err != nil {
			field.Set(reflect.Zero(field.Type()))
			keep(name, value)
			continue
		}
		if !isEmptyValue(field) {
			continue
		}
		if omitEmpty || (isNull(value) && !nullable(field.Kind())) {
			keep(name, value)
		}
	}

	for k, v := range raw {
		if _, ok := known[k]; !ok {
			keep(k, v)
		}
	}
	return extra, nil
}

// splitProgress separates numeric progress entries from the rest.
// ok is false when raw is not a JSON object.
func splitProgress(raw json.RawMessage) (map[string]float64, Fields, bool) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil, nil, false
	}

	progress := make(map[string]float64, len(entries))
	var rest Fields
	for courseID, value := range entries {
		var p float64
		if isNull(value) || json.Unmarshal(value, &p) != nil {
			if rest == nil {
				rest = make(Fields)
			}
			rest[courseID] = value
			continue
		}
		progress[courseID] = p
	}
	return progress, rest, true
}

// appendFields adds the extra keys missing from the encoded object base.
func appendFields(base []byte, extra Fields) ([]byte, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(base, &present); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	needComma := len(present) > 0
	for _, k := range sortedKeys(extra) {
		if _, ok := present[k]; ok {
			continue
		}
		if needComma {
			buf.WriteByte(',')
		}
		needComma = true
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonField(f reflect.StructField) (name string, omitEmpty bool, ok bool) {
	if !f.IsExported() {
		return "", false, false
	}
	tag := f.Tag.Get("json")
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return "", false, false
	}
	return name, strings.Contains(opts, "omitempty"), true
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	}
	return v.IsZero()
}

func nullable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func sortedKeys(f Fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
