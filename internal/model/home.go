package model

import (
	"context"

	g "github.com/reoring/goskema/dsl"
)

// Schemas mirror the authoring tool's document definitions. Every field of the
// home document is optional; the experience entries themselves carry required
// fields. Unknown keys (system metadata, hotspot data) are stripped.

var experienceSchema = g.ObjectOf[Experience]().
	Field("company", g.SchemaOf[string](nonEmpty())).Required().
	Field("role", g.SchemaOf[string](nonEmpty())).Required().
	Field("startDate", g.SchemaOf[string](nonEmpty())).Required().
	Field("endDate", g.Nullable(g.StringOf[string]())).
	Field("location", g.SchemaOf[string](nonEmpty())).Required().
	Field("summary", g.SchemaOf[string](nonEmpty())).Required().
	Field("achievements", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("techStack", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("companyId", g.SchemaOf[Slug](slugSchema)).Required().
	UnknownStrip().
	MustBind()

var educationSchema = g.ObjectOf[Education]().
	Field("institution", g.SchemaOf[string](nonEmpty())).Required().
	Field("degree", g.SchemaOf[string](nonEmpty())).Required().
	Field("field", g.Nullable(g.StringOf[string]())).
	Field("additionalInfo", g.Nullable(g.StringOf[string]())).
	UnknownStrip().
	MustBind()

var homeSchema = g.ObjectOf[HomeProfile]().
	Field("headline", g.Nullable(g.StringOf[string]())).
	Field("subheadline", g.Nullable(g.StringOf[string]())).
	Field("location", g.Nullable(g.StringOf[string]())).
	Field("email", g.Nullable(g.StringOf[string]())).
	Field("github", g.Nullable(g.StringOf[string]())).
	Field("linkedin", g.Nullable(g.StringOf[string]())).
	Field("tools", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("skills", g.ArrayOf[string](g.String())).Default([]any{}).
	Field("experience", g.ArrayOf[Experience](experienceSchema)).Default([]any{}).
	Field("education", g.ArrayOf[Education](educationSchema)).Default([]any{}).
	UnknownStrip().
	MustBind()

// ValidateHome shapes the raw home document. It fails with the full list of
// violations rather than the first one.
func ValidateHome(ctx context.Context, v any) (HomeProfile, error) {
	return homeSchema.Parse(ctx, v)
}

// ValidateExperience shapes a single experience entry.
func ValidateExperience(ctx context.Context, v any) (Experience, error) {
	return experienceSchema.Parse(ctx, v)
}

// ValidateExperienceList validates each entry on its own: entries that fail
// are reported through the rejected list instead of failing the whole set.
func ValidateExperienceList(ctx context.Context, v any) ([]Experience, []Rejected, error) {
	return validateList(ctx, v, ValidateExperience)
}
