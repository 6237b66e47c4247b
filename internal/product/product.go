package product

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Product conditions accepted by the add flow.
const (
	ConditionNew  = "New"
	ConditionUsed = "Used"
)

// Product represents a catalog entry. JSON tags match the shape persisted in
// the flat-file snapshot and returned by the API.
type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category"`
	Condition string    `json:"condition"`
	Price     int       `json:"price"`
	Specs     string    `json:"specs"`
	Images    ImageList `json:"images"`
	Published bool      `json:"published"`
}

// ImageList is an ordered list of image paths; the first entry is the primary
// image. Older snapshots stored a single string instead of an array, so
// unmarshalling accepts both and normalizes to the array form here rather than
// at every call site.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = []string{one}
	return nil
}

// Primary returns the first image path, or "" for an image-less record.
func (l ImageList) Primary() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Patch carries the fields of a partial update. Nil pointers leave the stored
// value untouched. ID and slug are not patchable.
type Patch struct {
	Name      *string    `json:"name,omitempty"`
	Category  *string    `json:"category,omitempty"`
	Condition *string    `json:"condition,omitempty"`
	Price     *int       `json:"price,omitempty"`
	Specs     *string    `json:"specs,omitempty"`
	Images    *ImageList `json:"images,omitempty"`
	Published *bool      `json:"published,omitempty"`
}

func (p Patch) apply(dst Product) Product {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Condition != nil {
		dst.Condition = *p.Condition
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Specs != nil {
		dst.Specs = *p.Specs
	}
	if p.Images != nil {
		dst.Images = *p.Images
	}
	if p.Published != nil {
		dst.Published = *p.Published
	}
	return dst
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses everything that is not a letter or
// digit into single hyphens, capped at 200 characters.
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// NewSlug derives a unique slug from a product name by suffixing the
// slugified name with the creation timestamp.
func NewSlug(name string, now time.Time) string {
	return Slugify(name) + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
