package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Slug is the human-readable unique key of a document, distinct from its
// internal _id.
type Slug struct {
	Current string `json:"current"`
}

// ImageRef points at an uploaded asset in the content store.
type ImageRef struct {
	Ref string `json:"_ref"`
}

// Image is an image field with optional alt text and caption. Hotspot and
// crop data are stripped during validation; the image URL builder only needs
// the asset reference.
type Image struct {
	Asset   ImageRef `json:"asset"`
	Alt     string   `json:"alt,omitempty"`
	Caption string   `json:"caption,omitempty"`
}

// HomeProfile is the singleton landing-page document.
type HomeProfile struct {
	Headline    string       `json:"headline,omitempty"`
	Subheadline string       `json:"subheadline,omitempty"`
	Location    string       `json:"location,omitempty"`
	Email       string       `json:"email,omitempty"`
	GitHub      string       `json:"github,omitempty"`
	LinkedIn    string       `json:"linkedin,omitempty"`
	Tools       []string     `json:"tools"`
	Skills      []string     `json:"skills"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
}

// Experience is one job entry on the home profile. CompanyID is the key blog
// posts reference through relatedExperience.
type Experience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"` // empty means current position
	Location     string   `json:"location"`
	Summary      string   `json:"summary"`
	Achievements []string `json:"achievements"`
	TechStack    []string `json:"techStack"`
	CompanyID    Slug     `json:"companyId"`
}

// Education is one schooling entry on the home profile.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// Metric is a label/value pair shown on a project case study.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProjectImage carries a light-mode image, an optional dark-mode variant,
// and required alt text.
type ProjectImage struct {
	LightImage Image  `json:"lightImage"`
	DarkImage  *Image `json:"darkImage,omitempty"`
	Alt        string `json:"alt"`
	Caption    string `json:"caption,omitempty"`
}

// ProjectLinks holds the optional outbound URLs of a project.
type ProjectLinks struct {
	Live   string `json:"live,omitempty"`
	GitHub string `json:"github,omitempty"`
}

// Project is a case-study document, addressable by its slug.
type Project struct {
	ID           string         `json:"_id"`
	Title        string         `json:"title"`
	Slug         Slug           `json:"slug"`
	Tagline      string         `json:"tagline,omitempty"`
	Description  string         `json:"description"`
	Overview     string         `json:"overview,omitempty"`
	Year         string         `json:"year"`
	Role         string         `json:"role"`
	Client       string         `json:"client,omitempty"`
	Duration     string         `json:"duration,omitempty"`
	Order        int            `json:"order"`
	Metrics      []Metric       `json:"metrics"`
	Technologies []string       `json:"technologies"`
	Highlights   []string       `json:"highlights"`
	Features     []string       `json:"features"`
	Challenges   []string       `json:"challenges"`
	Images       []ProjectImage `json:"images"`
	Links        *ProjectLinks  `json:"links,omitempty"`
	Featured     bool           `json:"featured"`
}

// BlogPost is a writing document, addressable by its slug.
type BlogPost struct {
	ID                string  `json:"_id"`
	Title             string  `json:"title"`
	Slug              Slug    `json:"slug"`
	Excerpt           string  `json:"excerpt"`
	PublishedAt       string  `json:"publishedAt"`
	CoverImage        *Image  `json:"coverImage,omitempty"`
	Category          string  `json:"category,omitempty"`
	Tags              []string `json:"tags"`
	ReadTime          int     `json:"readTime,omitempty"` // minutes
	RelatedExperience string  `json:"relatedExperience,omitempty"` // matches an Experience companyId
	Body              []Block `json:"body"`
}

// Body block discriminator values. The union is closed: anything else fails
// validation.
const (
	BlockTypeText  = "block"
	BlockTypeImage = "image"
	BlockTypeCode  = "code"
)

// Span is one run of text inside a rich-text block.
type Span struct {
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// TextBlock is a rich-text paragraph, heading, quote or list item.
type TextBlock struct {
	Style    string `json:"style,omitempty"`
	Children []Span `json:"children"`
	ListItem string `json:"listItem,omitempty"`
	Level    int    `json:"level,omitempty"`
}

// CodeBlock is a syntax-highlighted source snippet.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
	Filename string `json:"filename,omitempty"`
}

// Block is one element of a blog post body: a tagged union over Type with
// exactly one variant pointer set.
type Block struct {
	Type  string
	Text  *TextBlock
	Image *Image
	Code  *CodeBlock
}

// MarshalJSON re-emits the wire shape: the variant's fields flattened into a
// single object carrying the _type discriminator.
func (b Block) MarshalJSON() ([]byte, error) {
	var variant any
	switch b.Type {
	case BlockTypeText:
		variant = b.Text
	case BlockTypeImage:
		variant = b.Image
	case BlockTypeCode:
		variant = b.Code
	default:
		return nil, fmt.Errorf("unknown block type %q", b.Type)
	}
	raw, err := json.Marshal(variant)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["_type"] = b.Type
	return json.Marshal(m)
}

// UnmarshalJSON dispatches on the _type discriminator. Consumers decoding an
// already-shaped record get the same union handling as validation.
func (b *Block) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	switch head.Type {
	case BlockTypeText:
		var tb TextBlock
		if err := json.Unmarshal(data, &tb); err != nil {
			return err
		}
		*b = Block{Type: head.Type, Text: &tb}
	case BlockTypeImage:
		var im Image
		if err := json.Unmarshal(data, &im); err != nil {
			return err
		}
		*b = Block{Type: head.Type, Image: &im}
	case BlockTypeCode:
		var cb CodeBlock
		if err := json.Unmarshal(data, &cb); err != nil {
			return err
		}
		*b = Block{Type: head.Type, Code: &cb}
	default:
		return fmt.Errorf("unknown block type %q", head.Type)
	}
	return nil
}
