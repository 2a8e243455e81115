package model

import (
	"context"
	"net/url"

	goskema "github.com/reoring/goskema"
	g "github.com/reoring/goskema/dsl"
	js "github.com/reoring/goskema/jsonschema"
)

// Schema support for rules the DSL's MVP does not carry: non-empty strings,
// well-formed http(s) URLs, and optional nested objects projected to a
// pointer so Bind can distinguish absent from present.

type nonEmptyString struct {
	inner goskema.Schema[string]
}

func nonEmpty() goskema.Schema[string] { return nonEmptyString{inner: g.String()} }

func (s nonEmptyString) Parse(ctx context.Context, v any) (string, error) {
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", goskema.Issues{{Path: "/", Code: goskema.CodeTooShort, Message: "string is shorter than min"}}
	}
	return out, nil
}

func (s nonEmptyString) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[string], error) {
	out, err := s.Parse(ctx, v)
	return goskema.Decoded[string]{Value: out, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

func (s nonEmptyString) TypeCheck(ctx context.Context, v any) error {
	return s.inner.TypeCheck(ctx, v)
}

func (s nonEmptyString) RuleCheck(ctx context.Context, v any) error {
	if str, ok := v.(string); ok && str == "" {
		return goskema.Issues{{Path: "/", Code: goskema.CodeTooShort, Message: "string is shorter than min"}}
	}
	return s.inner.RuleCheck(ctx, v)
}

func (s nonEmptyString) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s nonEmptyString) ValidateValue(ctx context.Context, v string) error {
	if v == "" {
		return goskema.Issues{{Path: "/", Code: goskema.CodeTooShort, Message: "string is shorter than min"}}
	}
	return s.inner.ValidateValue(ctx, v)
}

func (s nonEmptyString) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

type urlString struct {
	inner goskema.Schema[string]
}

func httpURL() goskema.Schema[string] { return urlString{inner: g.String()} }

func checkURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return goskema.Issues{{Path: "/", Code: goskema.CodeInvalidFormat, Message: "invalid url", Hint: "expected absolute http(s) url"}}
	}
	return nil
}

func (s urlString) Parse(ctx context.Context, v any) (string, error) {
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return "", err
	}
	if err := checkURL(out); err != nil {
		return "", err
	}
	return out, nil
}

func (s urlString) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[string], error) {
	out, err := s.Parse(ctx, v)
	return goskema.Decoded[string]{Value: out, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

func (s urlString) TypeCheck(ctx context.Context, v any) error { return s.inner.TypeCheck(ctx, v) }

func (s urlString) RuleCheck(ctx context.Context, v any) error {
	if str, ok := v.(string); ok {
		return checkURL(str)
	}
	return s.inner.RuleCheck(ctx, v)
}

func (s urlString) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s urlString) ValidateValue(ctx context.Context, v string) error { return checkURL(v) }

func (s urlString) JSONSchema() (*js.Schema, error) {
	sc, err := s.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	sc.Format = "uri"
	return sc, nil
}

// minIntSchema enforces an inclusive lower bound on an integer field. It
// accepts the same wire forms the DSL's int adapter does: direct Go ints for
// default-application ergonomics, plus JSON numbers via NumberJSON.
type minIntSchema struct {
	min int
}

func minInt(min int) goskema.Schema[int] { return minIntSchema{min: min} }

func (s minIntSchema) tooSmall() goskema.Issues {
	return goskema.Issues{{Path: "/", Code: goskema.CodeTooSmall, Message: "number is smaller than min"}}
}

func (s minIntSchema) decode(ctx context.Context, v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	}
	num, err := g.NumberJSON().Parse(ctx, v)
	if err != nil {
		return 0, err
	}
	i64, perr := num.Int64()
	if perr != nil {
		return 0, goskema.Issues{{Path: "/", Code: goskema.CodeInvalidType, Message: "expected integer", Cause: perr}}
	}
	return int(i64), nil
}

func (s minIntSchema) Parse(ctx context.Context, v any) (int, error) {
	out, err := s.decode(ctx, v)
	if err != nil {
		return 0, err
	}
	if out < s.min {
		return 0, s.tooSmall()
	}
	return out, nil
}

func (s minIntSchema) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[int], error) {
	out, err := s.Parse(ctx, v)
	return goskema.Decoded[int]{Value: out, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

func (s minIntSchema) TypeCheck(ctx context.Context, v any) error {
	_, err := s.decode(ctx, v)
	return err
}

func (s minIntSchema) RuleCheck(ctx context.Context, v any) error {
	out, err := s.decode(ctx, v)
	if err != nil {
		return err
	}
	if out < s.min {
		return s.tooSmall()
	}
	return nil
}

func (s minIntSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s minIntSchema) ValidateValue(ctx context.Context, v int) error {
	if v < s.min {
		return s.tooSmall()
	}
	return nil
}

func (s minIntSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "integer"}, nil
}

// ptrSchema projects Schema[T] to Schema[*T]. Null and absent both decode to
// nil; a present value is fully validated by the inner schema.
type ptrSchema[T any] struct {
	inner goskema.Schema[T]
}

func optionalOf[T any](inner goskema.Schema[T]) goskema.Schema[*T] {
	return ptrSchema[T]{inner: inner}
}

func (s ptrSchema[T]) Parse(ctx context.Context, v any) (*T, error) {
	if v == nil {
		return nil, nil
	}
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s ptrSchema[T]) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[*T], error) {
	out, err := s.Parse(ctx, v)
	return goskema.Decoded[*T]{Value: out, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

func (s ptrSchema[T]) TypeCheck(ctx context.Context, v any) error {
	if v == nil {
		return nil
	}
	return s.inner.TypeCheck(ctx, v)
}

func (s ptrSchema[T]) RuleCheck(ctx context.Context, v any) error {
	if v == nil {
		return nil
	}
	return s.inner.RuleCheck(ctx, v)
}

func (s ptrSchema[T]) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s ptrSchema[T]) ValidateValue(ctx context.Context, v *T) error {
	if v == nil {
		return nil
	}
	return s.inner.ValidateValue(ctx, *v)
}

func (s ptrSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

// Shared sub-schemas.
var (
	slugSchema = g.ObjectOf[Slug]().
			Field("current", g.SchemaOf[string](nonEmpty())).Required().
			UnknownStrip().
			MustBind()

	imageRefSchema = g.ObjectOf[ImageRef]().
			Field("_ref", g.SchemaOf[string](nonEmpty())).Required().
			UnknownStrip().
			MustBind()

	imageSchema = g.ObjectOf[Image]().
			Field("asset", g.SchemaOf[ImageRef](imageRefSchema)).Required().
			Field("alt", g.Nullable(g.StringOf[string]())).
			Field("caption", g.Nullable(g.StringOf[string]())).
			UnknownStrip().
			MustBind()
)
