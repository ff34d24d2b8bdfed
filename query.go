package docindex

import "slices"

// LookupEntity returns a copy of the entity with the given name. The
// second result is false when no document mentions the name.
func (idx *Index) LookupEntity(name string) (Entity, bool) {
	e, ok := idx.byKey[NormalizeName(name)]
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// SectionsMentioning returns every section that mentions the entity, in
// first-seen order. Returns nil for an unknown entity.
func (idx *Index) SectionsMentioning(name string) []Location {
	e, ok := idx.byKey[NormalizeName(name)]
	if !ok {
		return nil
	}
	return slices.Clone(e.Locations)
}

// RelationshipsOf returns the targets of the entity's relations of the
// given type in insertion order.
// Returns EUNKNOWNENTITY when the entity is not in the index.
func (idx *Index) RelationshipsOf(name string, rel RelationType) ([]string, error) {
	e, ok := idx.byKey[NormalizeName(name)]
	if !ok {
		return nil, Errorf(EUNKNOWNENTITY, "entity %q not found in index", name)
	}
	return e.Targets(rel), nil
}

// RelatedTo returns the entities with a relation of the given type that
// targets name, in insertion order. It answers questions such as "which
// frameworks are recommended for this app type".
// Returns EUNKNOWNENTITY when the entity is not in the index.
func (idx *Index) RelatedTo(name string, rel RelationType) ([]string, error) {
	key := NormalizeName(name)
	if _, ok := idx.byKey[key]; !ok {
		return nil, Errorf(EUNKNOWNENTITY, "entity %q not found in index", name)
	}
	var sources []string
	for _, k := range idx.order {
		e := idx.byKey[k]
		for _, r := range e.Relations {
			if r.Type == rel && NormalizeName(r.Target) == key {
				sources = append(sources, e.Name)
				break
			}
		}
	}
	return sources, nil
}

// Entities returns copies of all entities in insertion order.
func (idx *Index) Entities() []Entity {
	entities := make([]Entity, 0, len(idx.order))
	for _, key := range idx.order {
		entities = append(entities, idx.byKey[key].clone())
	}
	return entities
}

// EntitiesByCategory returns copies of the entities seen under category c.
func (idx *Index) EntitiesByCategory(c Category) []Entity {
	var entities []Entity
	for _, key := range idx.order {
		if e := idx.byKey[key]; e.HasCategory(c) {
			entities = append(entities, e.clone())
		}
	}
	return entities
}

// Len returns the number of entities.
func (idx *Index) Len() int { return len(idx.order) }

// Documents returns the indexed documents in corpus order.
func (idx *Index) Documents() []*Document {
	return slices.Clone(idx.documents)
}

// Document returns the document with the given slug.
func (idx *Index) Document(slug string) (*Document, bool) {
	doc, ok := idx.bySlug[slug]
	return doc, ok
}

// Section returns the section at loc.
func (idx *Index) Section(loc Location) (*Section, bool) {
	doc, ok := idx.bySlug[loc.Document]
	if !ok {
		return nil, false
	}
	return doc.Section(loc.Section)
}

// References returns every reference site in document, section and block order.
func (idx *Index) References() []ReferenceSite {
	return slices.Clone(idx.refs)
}
