package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogPosts_NoFilter(t *testing.T) {
	q, params := BlogPosts(Filter{})
	assert.Equal(t, `*[_type == "blog-post"] | order(publishedAt desc) `+blogPostProjection, q)
	assert.Empty(t, params)
}

func TestBlogPosts_ExperienceFilter(t *testing.T) {
	q, params := BlogPosts(Filter{Experience: "initech"})
	assert.True(t, strings.HasPrefix(q, `*[_type == "blog-post" && relatedExperience == $experienceFilter] | order(publishedAt desc)`), q)
	assert.Equal(t, map[string]any{"experienceFilter": "initech"}, params)
}

func TestBlogPosts_TagFilter(t *testing.T) {
	q, params := BlogPosts(Filter{Tag: "distributed-systems"})
	assert.Contains(t, q, `*[_type == "blog-post" && $tagFilter in tags]`)
	assert.Equal(t, map[string]any{"tagFilter": "distributed-systems"}, params)
}

func TestBlogPosts_BothFilters(t *testing.T) {
	q, params := BlogPosts(Filter{Experience: "initech", Tag: "go"})
	assert.Contains(t, q, `_type == "blog-post" && relatedExperience == $experienceFilter && $tagFilter in tags`)
	require.Len(t, params, 2)
	assert.Equal(t, "initech", params["experienceFilter"])
	assert.Equal(t, "go", params["tagFilter"])
}

// Filter values travel as parameters only; the query text never embeds them.
func TestBlogPosts_NeverSplicesValues(t *testing.T) {
	q, _ := BlogPosts(Filter{Experience: `evil"] *`, Tag: "x'y"})
	assert.NotContains(t, q, `evil`)
	assert.NotContains(t, q, "x'y")
}

func TestProjects_OrdersByDisplayOrder(t *testing.T) {
	q, params := Projects()
	assert.Contains(t, q, "| order(order asc)")
	assert.Empty(t, params)
}

func TestProjectBySlug_UsesParameter(t *testing.T) {
	q, params := ProjectBySlug("atlas")
	assert.Contains(t, q, "slug.current == $slug")
	assert.Equal(t, map[string]any{"slug": "atlas"}, params)
	assert.NotContains(t, q, "atlas")
}

func TestBlogPostBySlug_UsesParameter(t *testing.T) {
	q, params := BlogPostBySlug("a-walkthrough")
	assert.Contains(t, q, "slug.current == $slug")
	assert.Equal(t, map[string]any{"slug": "a-walkthrough"}, params)
}

func TestHome_SelectsSingleton(t *testing.T) {
	q, params := Home()
	assert.Contains(t, q, `*[_type == "home"][0]`)
	assert.Empty(t, params)
}

func TestExperienceList_ProjectsEntriesOnly(t *testing.T) {
	q, params := ExperienceList()
	assert.Contains(t, q, `*[_type == "home"][0].experience[]`)
	assert.Contains(t, q, "companyId")
	assert.Empty(t, params)
}
