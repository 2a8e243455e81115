package model

import (
	"context"

	goskema "github.com/reoring/goskema"
	g "github.com/reoring/goskema/dsl"
	js "github.com/reoring/goskema/jsonschema"
)

var spanSchema = g.ObjectOf[Span]().
	Field("text", g.StringOf[string]()).Required().
	Field("marks", g.ArrayOf[string](g.String())).Default([]any{}).
	UnknownStrip().
	MustBind()

var textBlockSchema = g.ObjectOf[TextBlock]().
	Field("style", g.Nullable(g.StringOf[string]())).
	Field("children", g.ArrayOf[Span](spanSchema)).Default([]any{}).
	Field("listItem", g.Nullable(g.StringOf[string]())).
	Field("level", g.Nullable(g.IntOf[int]())).
	UnknownStrip().
	MustBind()

var codeBlockSchema = g.ObjectOf[CodeBlock]().
	Field("language", g.Nullable(g.StringOf[string]())).
	Field("code", g.StringOf[string]()).Required().
	Field("filename", g.Nullable(g.StringOf[string]())).
	UnknownStrip().
	MustBind()

// blockUnion dispatches on the _type discriminator. The union is closed: an
// unrecognized discriminator fails validation instead of being dropped.
type blockUnion struct{}

func (blockUnion) Parse(ctx context.Context, v any) (Block, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Block{}, goskema.Issues{{Path: "/", Code: goskema.CodeInvalidType, Message: "expected object", Hint: "expected object"}}
	}
	tag, _ := m["_type"].(string)
	if tag == "" {
		return Block{}, goskema.Issues{{Path: "/_type", Code: goskema.CodeDiscriminatorMissing, Message: "discriminator missing"}}
	}
	switch tag {
	case BlockTypeText:
		tb, err := textBlockSchema.Parse(ctx, v)
		if err != nil {
			return Block{}, err
		}
		return Block{Type: tag, Text: &tb}, nil
	case BlockTypeImage:
		im, err := imageSchema.Parse(ctx, v)
		if err != nil {
			return Block{}, err
		}
		return Block{Type: tag, Image: &im}, nil
	case BlockTypeCode:
		cb, err := codeBlockSchema.Parse(ctx, v)
		if err != nil {
			return Block{}, err
		}
		return Block{Type: tag, Code: &cb}, nil
	default:
		return Block{}, goskema.Issues{{Path: "/_type", Code: goskema.CodeDiscriminatorUnknown, Message: "unknown variant: '" + tag + "'"}}
	}
}

func (u blockUnion) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[Block], error) {
	b, err := u.Parse(ctx, v)
	return goskema.Decoded[Block]{Value: b, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

func (blockUnion) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(map[string]any); !ok {
		return goskema.Issues{{Path: "/", Code: goskema.CodeInvalidType, Message: "expected object", Hint: "expected object"}}
	}
	return nil
}

func (blockUnion) RuleCheck(ctx context.Context, v any) error { return nil }

func (u blockUnion) Validate(ctx context.Context, v any) error {
	if err := u.TypeCheck(ctx, v); err != nil {
		return err
	}
	return u.RuleCheck(ctx, v)
}

func (blockUnion) ValidateValue(ctx context.Context, b Block) error {
	switch b.Type {
	case BlockTypeText:
		if b.Text != nil {
			return textBlockSchema.ValidateValue(ctx, *b.Text)
		}
	case BlockTypeImage:
		if b.Image != nil {
			return imageSchema.ValidateValue(ctx, *b.Image)
		}
	case BlockTypeCode:
		if b.Code != nil {
			return codeBlockSchema.ValidateValue(ctx, *b.Code)
		}
	default:
		return goskema.Issues{{Path: "/_type", Code: goskema.CodeDiscriminatorUnknown, Message: "unknown variant: '" + b.Type + "'"}}
	}
	return nil
}

func (blockUnion) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{}
	for _, s := range []interface{ JSONSchema() (*js.Schema, error) }{textBlockSchema, imageSchema, codeBlockSchema} {
		vs, err := s.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, vs)
	}
	return out, nil
}

var blogPostSchema = g.ObjectOf[BlogPost]().
	Field("_id", g.SchemaOf[string](nonEmpty())).Required().
	Field("title", g.SchemaOf[string](nonEmpty())).Required().
	Field("slug", g.SchemaOf[Slug](slugSchema)).Required().
	Field("excerpt", g.SchemaOf[string](nonEmpty())).Required().
	Field("publishedAt", g.SchemaOf[string](nonEmpty())).Required().
	Field("coverImage", g.Nullable(g.SchemaOf[*Image](optionalOf(imageSchema)))).
	Field("category", g.Nullable(g.StringOf[string]())).
	Field("tags", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("readTime", g.Nullable(g.SchemaOf[int](minInt(1)))).
	Field("relatedExperience", g.Nullable(g.StringOf[string]())).
	Field("body", g.ArrayOf[Block](blockUnion{})).Default([]any{}).
	UnknownStrip().
	MustBind()

// ValidateBlogPost shapes a raw blog post document, enumerating every
// violation. Optional lists come back as empty slices so callers can iterate
// unconditionally.
func ValidateBlogPost(ctx context.Context, v any) (BlogPost, error) {
	return blogPostSchema.Parse(ctx, v)
}

// ValidateBlogPostList validates each record on its own; invalid records are
// reported through the rejected list instead of failing the whole set.
func ValidateBlogPostList(ctx context.Context, v any) ([]BlogPost, []Rejected, error) {
	return validateList(ctx, v, ValidateBlogPost)
}
