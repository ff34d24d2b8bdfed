package docindex

import (
	"slices"
	"strings"
)

// Category classifies an entity.
type Category string

// Recognized entity categories.
const (
	CategoryFramework Category = "framework"
	CategoryAppType   Category = "app_type"
	CategoryLayer     Category = "layer"
)

// Categories lists every recognized category.
var Categories = []Category{CategoryFramework, CategoryAppType, CategoryLayer}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// RelationType names a typed relationship between two entities.
type RelationType string

// Well-known relation types. Table rules may introduce others.
const (
	RelationRecommendedFor RelationType = "recommended_for"
	RelationLayerAbove     RelationType = "layer_above"
	RelationBuiltOn        RelationType = "built_on"
)

// Location identifies a section of a document.
type Location struct {
	Document string `json:"document"`
	Section  string `json:"section"`
}

// String renders the location as "slug#section".
func (l Location) String() string {
	return l.Document + "#" + l.Section
}

// Relation is an outgoing relationship from an entity.
type Relation struct {
	Type   RelationType `json:"type"`
	Target string       `json:"target"`
}

// Entity is a named concept extracted from document content. Entities are
// derived by the index builder and have no lifecycle of their own.
type Entity struct {
	// Name is the display form of the first mention seen.
	Name string `json:"name"`

	// Categories in first-seen order.
	Categories []Category `json:"categories"`

	// Locations in first-seen order, without duplicates.
	Locations []Location `json:"locations"`

	// Relations in insertion order. Conflicting relations from different
	// documents are all kept.
	Relations []Relation `json:"relations,omitempty"`
}

// Key returns the identity of the entity under name normalization.
func (e *Entity) Key() string {
	return NormalizeName(e.Name)
}

// HasCategory reports whether the entity was seen under category c.
func (e *Entity) HasCategory(c Category) bool {
	return slices.Contains(e.Categories, c)
}

// Targets returns the targets of relations of the given type in insertion order.
func (e *Entity) Targets(rel RelationType) []string {
	var targets []string
	for _, r := range e.Relations {
		if r.Type == rel {
			targets = append(targets, r.Target)
		}
	}
	return targets
}

func (e *Entity) clone() Entity {
	return Entity{
		Name:       e.Name,
		Categories: slices.Clone(e.Categories),
		Locations:  slices.Clone(e.Locations),
		Relations:  slices.Clone(e.Relations),
	}
}

// NormalizeName folds case and collapses runs of whitespace so that
// "Core  Data" and "core data" name the same entity.
func NormalizeName(name string) string {
	return strings.ToLower(collapseSpace(name))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
