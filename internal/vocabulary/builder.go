package vocabulary

import (
	"strings"

	"trustlabel/internal/domain"
)

// Builder derives a new Vocabulary from an existing one. The base is never
// modified.
type Builder struct {
	doc document
}

// NewBuilder starts from base, or from the embedded default when base is nil.
func NewBuilder(base *Vocabulary) *Builder {
	if base == nil {
		base = Default()
	}
	return &Builder{doc: base.doc.clone()}
}

// AddParameter maps term to field. An existing term is remapped in place,
// keeping its position in the match order; a new term is appended.
func (b *Builder) AddParameter(term, field string) *Builder {
	lower := strings.ToLower(strings.TrimSpace(term))
	for i, p := range b.doc.Parameters {
		if strings.ToLower(strings.TrimSpace(p.Term)) == lower {
			b.doc.Parameters[i].Field = field
			return b
		}
	}
	b.doc.Parameters = append(b.doc.Parameters, parameterDoc{Term: term, Field: field})
	return b
}

// AddUnit maps a unit synonym to its canonical unit.
func (b *Builder) AddUnit(from, to string) *Builder {
	for i, u := range b.doc.Units {
		if u.From == from {
			b.doc.Units[i].To = to
			return b
		}
	}
	b.doc.Units = append(b.doc.Units, unitDoc{From: from, To: to})
	return b
}

// AddLabKeyword adds a detection keyword for format.
func (b *Builder) AddLabKeyword(format domain.LabFormat, keyword string) *Builder {
	for i, lf := range b.doc.LabFormats {
		if domain.LabFormat(lf.Format) == format {
			b.doc.LabFormats[i].Keywords = append(b.doc.LabFormats[i].Keywords, keyword)
			return b
		}
	}
	b.doc.LabFormats = append(b.doc.LabFormats, labFormatDoc{Format: string(format), Keywords: []string{keyword}})
	return b
}

// AddAllergen adds an allergen name to search for.
func (b *Builder) AddAllergen(name string) *Builder {
	b.doc.Allergens = append(b.doc.Allergens, name)
	return b
}

// Build validates and compiles the vocabulary.
func (b *Builder) Build() (*Vocabulary, error) {
	return compile(b.doc.clone())
}

func (d document) clone() document {
	c := d
	c.LabFormats = make([]labFormatDoc, len(d.LabFormats))
	for i, lf := range d.LabFormats {
		c.LabFormats[i] = labFormatDoc{Format: lf.Format, Keywords: append([]string(nil), lf.Keywords...)}
	}
	c.HeaderPatterns = append([]headerPatternDoc(nil), d.HeaderPatterns...)
	c.Units = append([]unitDoc(nil), d.Units...)
	c.Fields = fieldsDoc{
		Microbiological: append([]string(nil), d.Fields.Microbiological...),
		HeavyMetals:     append([]string(nil), d.Fields.HeavyMetals...),
		Nutritional:     append([]nutritionalFieldDoc(nil), d.Fields.Nutritional...),
	}
	c.Parameters = append([]parameterDoc(nil), d.Parameters...)
	c.DetectionLimits = append([]string(nil), d.DetectionLimits...)
	c.Sections = make(map[string][]string, len(d.Sections))
	for k, v := range d.Sections {
		c.Sections[k] = append([]string(nil), v...)
	}
	c.Allergens = append([]string(nil), d.Allergens...)
	c.Vitamins = append([]string(nil), d.Vitamins...)
	c.Minerals = append([]string(nil), d.Minerals...)
	c.PhysicalChemical = append([]physChemDoc(nil), d.PhysicalChemical...)
	return c
}
