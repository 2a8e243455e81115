package usecase

import (
	"context"
	"errors"
	"testing"

	goskema "github.com/reoring/goskema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/internal/query"
	"portfolio-server/pkg/sanity"
)

type fakeFetcher struct {
	res        *sanity.Result
	err        error
	lastQuery  string
	lastParams map[string]any
	lastOpt    sanity.QueryOptions
}

func (f *fakeFetcher) Fetch(_ context.Context, q string, params map[string]any, opt sanity.QueryOptions) (*sanity.Result, error) {
	f.lastQuery, f.lastParams, f.lastOpt = q, params, opt
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func resultOf(data any) *sanity.Result {
	return &sanity.Result{Data: data, Perspective: sanity.PerspectivePublished}
}

func rawExperience() map[string]any {
	return map[string]any{
		"company":   "Initech",
		"role":      "Staff Engineer",
		"startDate": "2021-03",
		"location":  "Remote",
		"summary":   "Built the internal platform.",
		"companyId": map[string]any{"current": "initech"},
	}
}

func rawHome() map[string]any {
	return map[string]any{
		"headline":   "Platform engineer",
		"experience": []any{rawExperience()},
	}
}

func rawProject(title string) map[string]any {
	return map[string]any{
		"_id":         "project-" + title,
		"title":       title,
		"slug":        map[string]any{"current": title},
		"year":        "2024",
		"role":        "Lead developer",
		"description": "A case study.",
	}
}

func rawPost(slug string) map[string]any {
	return map[string]any{
		"_id":         "post-" + slug,
		"title":       "Title",
		"slug":        map[string]any{"current": slug},
		"excerpt":     "An excerpt.",
		"publishedAt": "2024-05-01T00:00:00Z",
	}
}

func TestGetHome_ValidatesAndWraps(t *testing.T) {
	f := &fakeFetcher{res: resultOf(rawHome())}
	svc := NewContentService(f)

	doc, err := svc.GetHome(context.Background(), sanity.QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Platform engineer", doc.Data.Headline)
	require.Len(t, doc.Data.Experience, 1)
	assert.Equal(t, f.lastQuery, doc.Query)
	assert.Equal(t, sanity.PerspectivePublished, doc.Perspective)
}

func TestGetHome_MissingDocument(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf(nil)})

	_, err := svc.GetHome(context.Background(), sanity.QueryOptions{})
	assert.True(t, IsNotFound(err))
}

func TestGetHome_UpstreamFailure(t *testing.T) {
	sentinel := errors.New("connection refused")
	svc := NewContentService(&fakeFetcher{err: sentinel})

	_, err := svc.GetHome(context.Background(), sanity.QueryOptions{})

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, IsNotFound(err))
}

func TestGetHome_InvalidDocument(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf(map[string]any{
		"experience": []any{map[string]any{}},
	})})

	_, err := svc.GetHome(context.Background(), sanity.QueryOptions{})
	require.Error(t, err)

	_, ok := goskema.AsIssues(err)
	assert.True(t, ok, "expected validation issues, got %v", err)
	assert.False(t, IsNotFound(err))
	var ue *UpstreamError
	assert.False(t, errors.As(err, &ue))
}

func TestGetProjectBySlug_NotFoundCarriesSlug(t *testing.T) {
	f := &fakeFetcher{res: resultOf(nil)}
	svc := NewContentService(f)

	_, err := svc.GetProjectBySlug(context.Background(), "atlas", sanity.QueryOptions{})
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `"atlas"`)
	assert.Equal(t, "atlas", f.lastParams["slug"])
}

func TestGetProjectBySlug_OK(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf(rawProject("atlas"))})

	doc, err := svc.GetProjectBySlug(context.Background(), "atlas", sanity.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "atlas", doc.Data.Slug.Current)
	assert.Equal(t, map[string]any{"slug": "atlas"}, doc.Params)
}

func TestGetProjects_NullResultIsEmptyList(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf(nil)})

	list, err := svc.GetProjects(context.Background(), sanity.QueryOptions{})
	require.NoError(t, err)
	assert.NotNil(t, list.Data)
	assert.Len(t, list.Data, 0)
	assert.Nil(t, list.Rejected)
	assert.NotEmpty(t, list.Query)
}

func TestGetProjects_KeepsStoreOrder(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf([]any{
		rawProject("bar"),
		rawProject("foo"),
	})})

	list, err := svc.GetProjects(context.Background(), sanity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "bar", list.Data[0].Title)
	assert.Equal(t, "foo", list.Data[1].Title)
}

func TestGetProjects_SplitsRejectedRecords(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf([]any{
		rawProject("ok"),
		map[string]any{"title": "broken"},
	})})

	list, err := svc.GetProjects(context.Background(), sanity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.Len(t, list.Rejected, 1)
	assert.Equal(t, 1, list.Rejected[0].Index)

	_, ok := goskema.AsIssues(list.Rejected[0].Err)
	assert.True(t, ok)
}

func TestGetProjects_NonArrayResult(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf(map[string]any{"oops": true})})

	_, err := svc.GetProjects(context.Background(), sanity.QueryOptions{})
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
}

func TestGetBlogPosts_AppliesFilter(t *testing.T) {
	f := &fakeFetcher{res: resultOf([]any{rawPost("a-walkthrough")})}
	svc := NewContentService(f)

	list, err := svc.GetBlogPosts(context.Background(), query.Filter{Experience: "initech", Tag: "go"}, sanity.QueryOptions{})
	require.NoError(t, err)

	assert.Contains(t, f.lastQuery, "relatedExperience == $experienceFilter")
	assert.Contains(t, f.lastQuery, "$tagFilter in tags")
	assert.Equal(t, "initech", f.lastParams["experienceFilter"])
	assert.Equal(t, "go", f.lastParams["tagFilter"])

	require.Len(t, list.Data, 1)
	assert.Equal(t, f.lastParams, list.Params)
}

func TestGetBlogPosts_EmptyMatchIsSuccess(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf([]any{})})

	list, err := svc.GetBlogPosts(context.Background(), query.Filter{Tag: "nothing-here"}, sanity.QueryOptions{})
	require.NoError(t, err)
	assert.NotNil(t, list.Data)
	assert.Len(t, list.Data, 0)
}

func TestGetBlogPostBySlug_OK(t *testing.T) {
	f := &fakeFetcher{res: resultOf(rawPost("a-walkthrough"))}
	svc := NewContentService(f)

	doc, err := svc.GetBlogPostBySlug(context.Background(), "a-walkthrough", sanity.QueryOptions{Perspective: sanity.PerspectiveDrafts})
	require.NoError(t, err)
	assert.Equal(t, "a-walkthrough", doc.Data.Slug.Current)
	assert.Equal(t, sanity.PerspectiveDrafts, f.lastOpt.Perspective)
}

func TestGetBlogPostBySlug_NotFound(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf(nil)})

	_, err := svc.GetBlogPostBySlug(context.Background(), "missing", sanity.QueryOptions{})
	assert.True(t, IsNotFound(err))
}

func TestGetExperienceList_MissingHomeIsEmpty(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf(nil)})

	list, err := svc.GetExperienceList(context.Background(), sanity.QueryOptions{})
	require.NoError(t, err)
	assert.NotNil(t, list.Data)
	assert.Len(t, list.Data, 0)
}

func TestGetExperienceList_OK(t *testing.T) {
	svc := NewContentService(&fakeFetcher{res: resultOf([]any{rawExperience()})})

	list, err := svc.GetExperienceList(context.Background(), sanity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Initech", list.Data[0].Company)
	assert.Equal(t, "initech", list.Data[0].CompanyID.Current)
}
