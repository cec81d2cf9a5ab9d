package vocabulary

import (
	"fmt"
	"regexp"
	"strings"

	"trustlabel/internal/domain"
)

type document struct {
	Version             int                 `yaml:"version"`
	LabFormats          []labFormatDoc      `yaml:"lab_formats"`
	DefaultHeaderFormat string              `yaml:"default_header_format"`
	HeaderPatterns      []headerPatternDoc  `yaml:"header_patterns"`
	ProductNamePattern  string              `yaml:"product_name_pattern"`
	BatchNumberPattern  string              `yaml:"batch_number_pattern"`
	Units               []unitDoc           `yaml:"units"`
	Fields              fieldsDoc           `yaml:"fields"`
	Parameters          []parameterDoc      `yaml:"parameters"`
	DetectionLimits     []string            `yaml:"detection_limits"`
	AbsentPattern       string              `yaml:"absent_pattern"`
	PresentPattern      string              `yaml:"present_pattern"`
	Sections            map[string][]string `yaml:"sections"`
	Allergens           []string            `yaml:"allergens"`
	Vitamins            []string            `yaml:"vitamins"`
	Minerals            []string            `yaml:"minerals"`
	PhysicalChemical    []physChemDoc       `yaml:"physical_chemical"`
}

type labFormatDoc struct {
	Format   string   `yaml:"format"`
	Keywords []string `yaml:"keywords"`
}

type headerPatternDoc struct {
	Format       string `yaml:"format"`
	ReportNumber string `yaml:"report_number"`
	Date         string `yaml:"date"`
	SampleID     string `yaml:"sample_id"`
}

type unitDoc struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type nutritionalFieldDoc struct {
	Field string `yaml:"field"`
	Unit  string `yaml:"unit"`
}

type fieldsDoc struct {
	Microbiological []string              `yaml:"microbiological"`
	HeavyMetals     []string              `yaml:"heavy_metals"`
	Nutritional     []nutritionalFieldDoc `yaml:"nutritional"`
}

type parameterDoc struct {
	Term  string `yaml:"term"`
	Field string `yaml:"field"`
}

type physChemDoc struct {
	Field   string `yaml:"field"`
	Pattern string `yaml:"pattern"`
	Text    bool   `yaml:"text"`
}

var knownFormats = map[domain.LabFormat]bool{
	domain.LabFormatEurofins:      true,
	domain.LabFormatSGS:           true,
	domain.LabFormatIntertek:      true,
	domain.LabFormatBureauVeritas: true,
	domain.LabFormatALS:           true,
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidVocabulary, fmt.Sprintf(format, args...))
}

func compilePattern(what, expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, invalid("%s: empty pattern", what)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, invalid("%s: %v", what, err)
	}
	return re, nil
}

func compile(doc document) (*Vocabulary, error) {
	if doc.Version < 1 {
		return nil, invalid("version must be >= 1, got %d", doc.Version)
	}
	v := &Vocabulary{
		doc:        doc,
		headers:    make(map[domain.LabFormat]HeaderPatterns),
		units:      make(map[string]string),
		unitsFold:  make(map[string]string),
		nutriUnits: make(map[string]string),
		kinds:      make(map[string]FieldKind),
		sections:   make(map[string][]string),
	}

	for _, lf := range doc.LabFormats {
		f := domain.LabFormat(lf.Format)
		if !knownFormats[f] {
			return nil, invalid("unknown lab format %q", lf.Format)
		}
		kw := make([]string, 0, len(lf.Keywords))
		for _, k := range lf.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kw = append(kw, k)
			}
		}
		v.labFormats = append(v.labFormats, LabKeywords{Format: f, Keywords: kw})
	}

	for _, hp := range doc.HeaderPatterns {
		f := domain.LabFormat(hp.Format)
		if !knownFormats[f] {
			return nil, invalid("header patterns: unknown lab format %q", hp.Format)
		}
		var compiled HeaderPatterns
		var err error
		if compiled.ReportNumber, err = compilePattern(hp.Format+" report_number", hp.ReportNumber); err != nil {
			return nil, err
		}
		if compiled.Date, err = compilePattern(hp.Format+" date", hp.Date); err != nil {
			return nil, err
		}
		if compiled.SampleID, err = compilePattern(hp.Format+" sample_id", hp.SampleID); err != nil {
			return nil, err
		}
		v.headers[f] = compiled
	}
	v.defaultHeader = domain.LabFormat(doc.DefaultHeaderFormat)
	if _, ok := v.headers[v.defaultHeader]; !ok {
		return nil, invalid("default header format %q has no patterns", doc.DefaultHeaderFormat)
	}

	var err error
	if v.productName, err = compilePattern("product_name_pattern", doc.ProductNamePattern); err != nil {
		return nil, err
	}
	if v.batchNumber, err = compilePattern("batch_number_pattern", doc.BatchNumberPattern); err != nil {
		return nil, err
	}

	for _, u := range doc.Units {
		if u.From == "" || u.To == "" {
			return nil, invalid("unit mapping %q -> %q is incomplete", u.From, u.To)
		}
		v.units[u.From] = u.To
		v.unitsFold[strings.ToLower(u.From)] = u.To
	}
	// A canonical unit that is also a synonym would make normalization
	// depend on how many times it is applied.
	for _, to := range v.units {
		if _, ok := v.unitsFold[strings.ToLower(to)]; ok {
			return nil, invalid("canonical unit %q is also a synonym", to)
		}
	}

	addField := func(field string, kind FieldKind) error {
		if field == "" {
			return invalid("empty field key")
		}
		if _, dup := v.kinds[field]; dup {
			return invalid("field %q declared twice", field)
		}
		v.kinds[field] = kind
		return nil
	}
	for _, f := range doc.Fields.Microbiological {
		if err := addField(f, KindMicrobiological); err != nil {
			return nil, err
		}
		v.microFields = append(v.microFields, f)
	}
	for _, f := range doc.Fields.HeavyMetals {
		if err := addField(f, KindHeavyMetal); err != nil {
			return nil, err
		}
		v.metalFields = append(v.metalFields, f)
	}
	for _, nf := range doc.Fields.Nutritional {
		if err := addField(nf.Field, KindNutritional); err != nil {
			return nil, err
		}
		v.nutriFields = append(v.nutriFields, nf.Field)
		v.nutriUnits[nf.Field] = nf.Unit
	}

	for _, p := range doc.Parameters {
		term := strings.ToLower(strings.TrimSpace(p.Term))
		if term == "" {
			return nil, invalid("parameter synonym for %q has no term", p.Field)
		}
		if _, ok := v.kinds[p.Field]; !ok {
			return nil, invalid("synonym %q maps to unknown field %q", p.Term, p.Field)
		}
		v.parameters = append(v.parameters, Synonym{Term: term, Field: p.Field})
	}

	for i, expr := range doc.DetectionLimits {
		re, err := compilePattern(fmt.Sprintf("detection_limits[%d]", i), expr)
		if err != nil {
			return nil, err
		}
		v.detectionLimits = append(v.detectionLimits, re)
	}
	if v.absent, err = compilePattern("absent_pattern", doc.AbsentPattern); err != nil {
		return nil, err
	}
	if v.present, err = compilePattern("present_pattern", doc.PresentPattern); err != nil {
		return nil, err
	}

	for name, kws := range doc.Sections {
		lower := make([]string, 0, len(kws))
		for _, k := range kws {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				lower = append(lower, k)
			}
		}
		v.sections[name] = lower
	}

	v.allergens = append([]string(nil), doc.Allergens...)
	v.vitamins = append([]string(nil), doc.Vitamins...)
	v.minerals = append([]string(nil), doc.Minerals...)

	for _, pc := range doc.PhysicalChemical {
		re, err := compilePattern("physical_chemical "+pc.Field, pc.Pattern)
		if err != nil {
			return nil, err
		}
		v.physChem = append(v.physChem, PhysChemPattern{Field: pc.Field, Pattern: re, Text: pc.Text})
	}

	return v, nil
}
