package model

import (
	"context"

	goskema "github.com/reoring/goskema"
)

// Rejected identifies one record of a list result that failed validation.
// The index refers to the record's position in the raw result.
type Rejected struct {
	Index int   `json:"index"`
	Err   error `json:"-"`
}

// validateList validates every record independently and splits the result
// into shaped records and rejected entries, so callers decide between partial
// rendering and failing the request.
func validateList[T any](ctx context.Context, v any, validate func(context.Context, any) (T, error)) ([]T, []Rejected, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, nil, goskema.Issues{{Path: "/", Code: goskema.CodeInvalidType, Message: "expected array", Hint: "expected array"}}
	}
	out := make([]T, 0, len(raw))
	var rejected []Rejected
	for i, item := range raw {
		rec, err := validate(ctx, item)
		if err != nil {
			rejected = append(rejected, Rejected{Index: i, Err: err})
			continue
		}
		out = append(out, rec)
	}
	return out, rejected, nil
}
