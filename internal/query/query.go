// Package query composes GROQ query strings and their parameter mappings.
// Filter values are always passed as parameters, never spliced into the
// query text.
package query

import (
	"fmt"
	"strings"
)

const homeQuery = `*[_type == "home"][0]{
  headline,
  subheadline,
  tools,
  skills,
  location,
  email,
  github,
  linkedin,
  "experience": experience[]{
    company,
    role,
    summary,
    achievements,
    techStack,
    companyId,
    startDate,
    endDate,
    location
  },
  "education": education[]{
    institution,
    degree,
    field,
    additionalInfo
  }
}`

const experienceListQuery = `*[_type == "home"][0].experience[]{
  company,
  role,
  summary,
  achievements,
  techStack,
  companyId,
  startDate,
  endDate,
  location
}`

const projectsQuery = `*[_type == "project"] | order(order asc) {
  _id,
  title,
  slug,
  year,
  role,
  description,
  technologies,
  highlights,
  links
}`

const projectBySlugQuery = `*[_type == 'project' && slug.current == $slug][0] {
  _id,
  title,
  slug,
  year,
  role,
  description,
  technologies,
  highlights,
  links,
  client,
  duration,
  order,
  metrics,
  features,
  challenges,
  featured,
  images,
  tagline,
  overview
}`

const blogPostBySlugQuery = `*[_type == 'blog-post' && slug.current == $slug][0] {
  _id,
  title,
  slug,
  excerpt,
  publishedAt,
  coverImage,
  category,
  tags,
  readTime,
  body
}`

const blogPostProjection = `{
  _id,
  title,
  slug,
  excerpt,
  publishedAt,
  coverImage,
  category,
  tags,
  readTime,
  relatedExperience
}`

// Filter holds the optional blog listing criteria taken from the request URL.
// Both predicates are independent; when both are set they combine with a
// logical AND.
type Filter struct {
	Experience string // matches relatedExperience (an Experience companyId)
	Tag        string // must be a member of tags
}

// Home selects the singleton home document.
func Home() (string, map[string]any) {
	return homeQuery, map[string]any{}
}

// ExperienceList selects only the experience entries of the home document.
func ExperienceList() (string, map[string]any) {
	return experienceListQuery, map[string]any{}
}

// Projects selects all projects in display order (order ascending).
func Projects() (string, map[string]any) {
	return projectsQuery, map[string]any{}
}

// ProjectBySlug selects the first project whose slug matches.
func ProjectBySlug(slug string) (string, map[string]any) {
	return projectBySlugQuery, map[string]any{"slug": slug}
}

// BlogPostBySlug selects the first blog post whose slug matches.
func BlogPostBySlug(slug string) (string, map[string]any) {
	return blogPostBySlugQuery, map[string]any{"slug": slug}
}

// BlogPosts selects blog posts newest first, narrowed by the filter.
func BlogPosts(f Filter) (string, map[string]any) {
	conds := []string{`_type == "blog-post"`}
	params := map[string]any{}

	if f.Experience != "" {
		conds = append(conds, "relatedExperience == $experienceFilter")
		params["experienceFilter"] = f.Experience
	}
	if f.Tag != "" {
		conds = append(conds, "$tagFilter in tags")
		params["tagFilter"] = f.Tag
	}

	q := fmt.Sprintf("*[%s] | order(publishedAt desc) %s", strings.Join(conds, " && "), blogPostProjection)
	return q, params
}
