// Package usecase wires queries, the content store, and validation together.
// Each method is a read-through fetch: no cache, no retry, no re-sorting.
package usecase

import (
	"context"

	"portfolio-server/internal/model"
	"portfolio-server/internal/query"
	"portfolio-server/pkg/sanity"
)

// Fetcher is the slice of the content-store client the service needs. Tests
// substitute a fake.
type Fetcher interface {
	Fetch(ctx context.Context, query string, params map[string]any, opt sanity.QueryOptions) (*sanity.Result, error)
}

// ContentService fetches and validates the three document kinds.
type ContentService struct {
	store Fetcher
}

func NewContentService(store Fetcher) *ContentService {
	return &ContentService{store: store}
}

// Doc is a validated single-document result, carrying the query and params so
// the rendering layer can re-run the same query live for visual editing.
type Doc[T any] struct {
	Data        T              `json:"data"`
	Query       string         `json:"query"`
	Params      map[string]any `json:"params"`
	Perspective string         `json:"perspective"`
}

// List is a validated list result. Rejected identifies records that failed
// validation; the valid records are still usable for partial rendering.
type List[T any] struct {
	Data        []T              `json:"data"`
	Rejected    []model.Rejected `json:"rejected,omitempty"`
	Query       string           `json:"query"`
	Params      map[string]any   `json:"params"`
	Perspective string           `json:"perspective"`
}

// GetHome fetches and validates the singleton home document.
func (s *ContentService) GetHome(ctx context.Context, opt sanity.QueryOptions) (*Doc[model.HomeProfile], error) {
	q, params := query.Home()
	res, err := s.store.Fetch(ctx, q, params, opt)
	if err != nil {
		return nil, &UpstreamError{Op: "get home", Err: err}
	}
	if res.Data == nil {
		return nil, &NotFoundError{Kind: "home"}
	}
	home, err := model.ValidateHome(ctx, res.Data)
	if err != nil {
		return nil, err
	}
	return &Doc[model.HomeProfile]{Data: home, Query: q, Params: params, Perspective: res.Perspective}, nil
}

// GetExperienceList fetches the experience entries of the home document. A
// missing document yields an empty list, which is a valid renderable state.
func (s *ContentService) GetExperienceList(ctx context.Context, opt sanity.QueryOptions) (*List[model.Experience], error) {
	q, params := query.ExperienceList()
	return fetchList(ctx, s.store, q, params, opt, "get experience list", model.ValidateExperienceList)
}

// GetProjects fetches all projects. The store returns them in display order
// (order ascending); the result is not re-sorted here.
func (s *ContentService) GetProjects(ctx context.Context, opt sanity.QueryOptions) (*List[model.Project], error) {
	q, params := query.Projects()
	return fetchList(ctx, s.store, q, params, opt, "get projects", model.ValidateProjectList)
}

// GetProjectBySlug fetches one project. A missing or unusable record is a
// NotFoundError, never an empty success.
func (s *ContentService) GetProjectBySlug(ctx context.Context, slug string, opt sanity.QueryOptions) (*Doc[model.Project], error) {
	q, params := query.ProjectBySlug(slug)
	res, err := s.store.Fetch(ctx, q, params, opt)
	if err != nil {
		return nil, &UpstreamError{Op: "get project", Err: err}
	}
	if res.Data == nil {
		return nil, &NotFoundError{Kind: "project", Key: slug}
	}
	project, err := model.ValidateProject(ctx, res.Data)
	if err != nil {
		return nil, err
	}
	return &Doc[model.Project]{Data: project, Query: q, Params: params, Perspective: res.Perspective}, nil
}

// GetBlogPosts fetches the blog listing narrowed by the filter, newest first.
func (s *ContentService) GetBlogPosts(ctx context.Context, f query.Filter, opt sanity.QueryOptions) (*List[model.BlogPost], error) {
	q, params := query.BlogPosts(f)
	return fetchList(ctx, s.store, q, params, opt, "get blog posts", model.ValidateBlogPostList)
}

// GetBlogPostBySlug fetches one blog post by its slug.
func (s *ContentService) GetBlogPostBySlug(ctx context.Context, slug string, opt sanity.QueryOptions) (*Doc[model.BlogPost], error) {
	q, params := query.BlogPostBySlug(slug)
	res, err := s.store.Fetch(ctx, q, params, opt)
	if err != nil {
		return nil, &UpstreamError{Op: "get blog post", Err: err}
	}
	if res.Data == nil {
		return nil, &NotFoundError{Kind: "blog post", Key: slug}
	}
	post, err := model.ValidateBlogPost(ctx, res.Data)
	if err != nil {
		return nil, err
	}
	return &Doc[model.BlogPost]{Data: post, Query: q, Params: params, Perspective: res.Perspective}, nil
}

// fetchList runs a list query. A nil top-level result means zero documents
// and yields an empty list; a non-array result is an upstream fault.
func fetchList[T any](
	ctx context.Context,
	store Fetcher,
	q string,
	params map[string]any,
	opt sanity.QueryOptions,
	op string,
	validate func(context.Context, any) ([]T, []model.Rejected, error),
) (*List[T], error) {
	res, err := store.Fetch(ctx, q, params, opt)
	if err != nil {
		return nil, &UpstreamError{Op: op, Err: err}
	}
	out := &List[T]{Data: []T{}, Query: q, Params: params, Perspective: res.Perspective}
	if res.Data == nil {
		return out, nil
	}
	items, rejected, err := validate(ctx, res.Data)
	if err != nil {
		return nil, &UpstreamError{Op: op, Err: err}
	}
	out.Data = items
	out.Rejected = rejected
	return out, nil
}
