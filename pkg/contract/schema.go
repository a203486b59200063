package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator checks a raw JSON document against a shape and returns its
// canonical value. Failures are reported as *ValidationError.
type Validator interface {
	Validate(raw []byte) (any, error)
}

var validate = validator.New()

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindTime
)

var timeType = reflect.TypeOf(time.Time{})

type field struct {
	index    int
	name     string
	kind     fieldKind
	nullable bool
	optional bool
	messages map[string]string
}

// Schema is a shape derived once from the struct tags of T:
//
//	json      wire name of the field
//	validate  go-playground/validator rules
//	msg       per-rule message overrides, "rule=message;rule=message"
//
// Non-pointer fields must be present and non-null. Pointer fields are
// nullable. Keys not declared by T are dropped.
type Schema[T any] struct {
	name   string
	fields []field
	byGo   map[string]int
}

// NewSchema builds the schema for T. It panics if T is not a struct of
// supported field types; schemas are package-level values so a bad type
// fails at start-up.
func NewSchema[T any]() *Schema[T] {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("contract: schema type %v is not a struct", t))
	}

	s := &Schema[T]{name: t.Name(), byGo: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		f := field{index: i, name: name, messages: parseMessages(sf.Tag.Get("msg"))}
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			f.nullable = true
			ft = ft.Elem()
		}
		switch {
		case ft == timeType:
			f.kind = kindTime
		case ft.Kind() == reflect.String:
			f.kind = kindString
		case ft.Kind() >= reflect.Int && ft.Kind() <= reflect.Int64:
			f.kind = kindInt
		default:
			panic(fmt.Sprintf("contract: %s.%s has unsupported type %s", t.Name(), sf.Name, sf.Type))
		}
		f.optional = f.nullable || strings.HasPrefix(sf.Tag.Get("validate"), "omitempty")

		s.byGo[sf.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Name returns the Go type name the schema was derived from.
func (s *Schema[T]) Name() string { return s.name }

// Parse decodes raw and returns the canonical value of T.
func (s *Schema[T]) Parse(raw []byte) (T, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		var zero T
		return zero, err
	}
	out, errs := s.parseAt(doc, "")
	if len(errs) > 0 {
		var zero T
		return zero, &ValidationError{Errors: errs}
	}
	return out, nil
}

// ParseValue runs v through its JSON encoding and then Parse, so Go values
// are checked by exactly the rules applied to bytes off the wire.
func (s *Schema[T]) ParseValue(v any) (T, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("contract: encode %s: %w", s.name, err)
	}
	return s.Parse(raw)
}

// Validate implements Validator.
func (s *Schema[T]) Validate(raw []byte) (any, error) {
	out, err := s.Parse(raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckFields validates v but reports only failures on the named top-level
// fields. It returns nil when none of them failed.
func (s *Schema[T]) CheckFields(v any, names ...string) error {
	_, err := s.ParseValue(v)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	var errs []FieldError
	for _, fe := range verr.Errors {
		head, _, _ := strings.Cut(fe.Path, ".")
		if keep[head] {
			errs = append(errs, fe)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

func (s *Schema[T]) parseAt(doc any, prefix string) (T, []FieldError) {
	var out T
	obj, ok := doc.(map[string]any)
	if !ok {
		return out, []FieldError{{Path: prefix, Message: "Expected object, received " + typeName(doc)}}
	}

	// One message per field, so the result is ordered by declaration no
	// matter which stage produced it.
	slots := make([]string, len(s.fields))
	rv := reflect.ValueOf(&out).Elem()
	for i, f := range s.fields {
		v, present := obj[f.name]
		if !present || v == nil {
			if !f.optional {
				slots[i] = "Required"
			}
			continue
		}
		slots[i] = f.assign(rv.Field(f.index), v)
	}

	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				i, ok := s.byGo[fe.StructField()]
				if !ok || slots[i] != "" {
					continue
				}
				slots[i] = s.fields[i].message(fe)
			}
		}
	}

	var errs []FieldError
	for i, msg := range slots {
		if msg != "" {
			errs = append(errs, FieldError{Path: joinPath(prefix, s.fields[i].name), Message: msg})
		}
	}
	return out, errs
}

func (f field) assign(fv reflect.Value, v any) string {
	target := fv
	if f.nullable {
		target = reflect.New(fv.Type().Elem()).Elem()
	}
	if msg := f.coerce(target, v); msg != "" {
		return msg
	}
	if f.nullable {
		fv.Set(target.Addr())
	}
	return ""
}

func (f field) coerce(target reflect.Value, v any) string {
	switch f.kind {
	case kindString:
		s, ok := v.(string)
		if !ok {
			return expected("string", v)
		}
		target.SetString(s)
	case kindInt:
		n, msg := coerceInt(v)
		if msg != "" {
			return msg
		}
		if target.OverflowInt(n) {
			return "Number is too large"
		}
		target.SetInt(n)
	case kindTime:
		t, msg := coerceTime(v)
		if msg != "" {
			return msg
		}
		target.Set(reflect.ValueOf(t))
	}
	return ""
}

// coerceInt accepts JSON numbers with an integral value and numeric strings.
func coerceInt(v any) (int64, string) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, ""
		}
		if fl, err := x.Float64(); err == nil && fl == math.Trunc(fl) && math.Abs(fl) <= 1<<53 {
			return int64(fl), ""
		}
		return 0, "Expected integer, received float"
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, "Expected number, received string"
		}
		return n, ""
	}
	return 0, expected("number", v)
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// coerceTime accepts ISO 8601 strings and epoch milliseconds. Instants are
// normalised to UTC.
func coerceTime(v any) (time.Time, string) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range instantLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				if t.IsZero() {
					return time.Time{}, "Invalid date"
				}
				return t.UTC(), ""
			}
		}
		return time.Time{}, "Invalid date"
	case json.Number:
		ms, err := x.Int64()
		if err != nil {
			return time.Time{}, "Invalid date"
		}
		return time.UnixMilli(ms).UTC(), ""
	}
	return time.Time{}, expected("date", v)
}

func (f field) message(fe validator.FieldError) string {
	if m, ok := f.messages[fe.Tag()]; ok {
		return m
	}
	return defaultMessage(fe)
}

func defaultMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "url":
		return "Invalid url"
	case "min":
		if isString {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return "Number must be greater than or equal to " + fe.Param()
	case "max":
		if isString {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return "Number must be less than or equal to " + fe.Param()
	case "gt":
		return "Number must be greater than " + fe.Param()
	case "gte":
		return "Number must be greater than or equal to " + fe.Param()
	case "oneof":
		return "Invalid enum value. Expected " + strings.Join(strings.Fields(fe.Param()), " | ")
	}
	return "Invalid value"
}

func parseMessages(tag string) map[string]string {
	if tag == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(tag, ";") {
		rule, msg, ok := strings.Cut(part, "=")
		if ok {
			out[strings.TrimSpace(rule)] = strings.TrimSpace(msg)
		}
	}
	return out
}

func decodeDocument(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil || dec.More() {
		return nil, &ValidationError{Errors: []FieldError{{Message: "Invalid JSON"}}}
	}
	return doc, nil
}

func expected(want string, got any) string {
	return "Expected " + want + ", received " + typeName(got)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// ListSchema validates a JSON array whose elements match a Schema.
// Element failures are reported under "index.field".
type ListSchema[T any] struct {
	elem *Schema[T]
}

// ListOf returns the array form of elem.
func ListOf[T any](elem *Schema[T]) *ListSchema[T] {
	return &ListSchema[T]{elem: elem}
}

// Parse decodes raw into a non-nil slice.
func (l *ListSchema[T]) Parse(raw []byte) ([]T, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, &ValidationError{Errors: []FieldError{{Message: "Expected array, received " + typeName(doc)}}}
	}

	out := make([]T, 0, len(items))
	var errs []FieldError
	for i, item := range items {
		v, ferrs := l.elem.parseAt(item, strconv.Itoa(i))
		errs = append(errs, ferrs...)
		out = append(out, v)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return out, nil
}

// Validate implements Validator.
func (l *ListSchema[T]) Validate(raw []byte) (any, error) {
	out, err := l.Parse(raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}
