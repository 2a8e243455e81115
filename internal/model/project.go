package model

import (
	"context"

	g "github.com/reoring/goskema/dsl"
)

var metricSchema = g.ObjectOf[Metric]().
	Field("label", g.SchemaOf[string](nonEmpty())).Required().
	Field("value", g.SchemaOf[string](nonEmpty())).Required().
	UnknownStrip().
	MustBind()

var projectImageSchema = g.ObjectOf[ProjectImage]().
	Field("lightImage", g.SchemaOf[Image](imageSchema)).Required().
	Field("darkImage", g.Nullable(g.SchemaOf[*Image](optionalOf(imageSchema)))).
	Field("alt", g.SchemaOf[string](nonEmpty())).Required().
	Field("caption", g.Nullable(g.StringOf[string]())).
	UnknownStrip().
	MustBind()

var projectLinksSchema = g.ObjectOf[ProjectLinks]().
	Field("live", g.Nullable(g.SchemaOf[string](httpURL()))).
	Field("github", g.Nullable(g.SchemaOf[string](httpURL()))).
	UnknownStrip().
	MustBind()

// The list query projects a subset of these fields; everything beyond the
// identity fields is optional so both projections validate.
var projectSchema = g.ObjectOf[Project]().
	Field("_id", g.SchemaOf[string](nonEmpty())).Required().
	Field("title", g.SchemaOf[string](nonEmpty())).Required().
	Field("slug", g.SchemaOf[Slug](slugSchema)).Required().
	Field("tagline", g.SchemaOf[string](nonEmpty())).
	Field("description", g.SchemaOf[string](nonEmpty())).Required().
	Field("overview", g.SchemaOf[string](nonEmpty())).
	Field("year", g.SchemaOf[string](nonEmpty())).Required().
	Field("role", g.SchemaOf[string](nonEmpty())).Required().
	Field("client", g.SchemaOf[string](nonEmpty())).
	Field("duration", g.SchemaOf[string](nonEmpty())).
	Field("order", g.Nullable(g.SchemaOf[int](minInt(0)))).
	Field("metrics", g.ArrayOf[Metric](metricSchema)).Default([]any{}).
	Field("technologies", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("highlights", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("features", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("challenges", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("images", g.ArrayOf[ProjectImage](projectImageSchema)).Default([]any{}).
	Field("links", g.Nullable(g.SchemaOf[*ProjectLinks](optionalOf(projectLinksSchema)))).
	Field("featured", g.BoolOf[bool]()).Default(false).
	UnknownStrip().
	MustBind()

// ValidateProject shapes a raw project document, enumerating every violation.
func ValidateProject(ctx context.Context, v any) (Project, error) {
	return projectSchema.Parse(ctx, v)
}

// ValidateProjectList validates each record on its own; invalid records are
// reported through the rejected list instead of failing the whole set.
func ValidateProjectList(ctx context.Context, v any) ([]Project, []Rejected, error) {
	return validateList(ctx, v, ValidateProject)
}
