package domain

// RawDocument is the caller-owned input to a parse call.
type RawDocument struct {
	Name      string `json:"name,omitempty"`
	MediaType string `json:"media_type,omitempty"`
	Text      string `json:"text"`
}

// TestResult is one extracted measurement.
type TestResult struct {
	Value          Value      `json:"value"`
	Unit           string     `json:"unit,omitempty"`
	Method         string     `json:"method,omitempty"`
	DetectionLimit string     `json:"detection_limit,omitempty"`
	Status         TestStatus `json:"status,omitempty"`
	Reference      string     `json:"reference,omitempty"`
}

// NamedResult pairs a canonical field key with its measurement.
type NamedResult struct {
	Field  string     `json:"field"`
	Result TestResult `json:"result"`
}

// Measurements is a category of results ordered by first insertion.
// Setting an existing field replaces its result in place.
type Measurements []NamedResult

// Get returns the result stored for field.
func (m Measurements) Get(field string) (TestResult, bool) {
	for _, nr := range m {
		if nr.Field == field {
			return nr.Result, true
		}
	}
	return TestResult{}, false
}

// Has reports whether field has a result.
func (m Measurements) Has(field string) bool {
	_, ok := m.Get(field)
	return ok
}

// Set stores r under field, keeping the field's original position.
func (m *Measurements) Set(field string, r TestResult) {
	for i := range *m {
		if (*m)[i].Field == field {
			(*m)[i].Result = r
			return
		}
	}
	*m = append(*m, NamedResult{Field: field, Result: r})
}

// ReportHeader holds the metadata found at the top of a lab report.
type ReportHeader struct {
	ReportNumber string `json:"report_number,omitempty"`
	ReportDate   string `json:"report_date,omitempty"`
	SampleID     string `json:"sample_id,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	BatchNumber  string `json:"batch_number,omitempty"`
}

// PesticideResults holds the compounds found in a pesticide section.
type PesticideResults struct {
	Detected []NamedResult `json:"detected"`
	Total    TestResult    `json:"total_pesticides"`
}

// Nutrient is a vitamin or mineral line item.
type Nutrient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// NutritionalProfile holds nutrition facts plus vitamins and minerals.
type NutritionalProfile struct {
	Values   Measurements `json:"values,omitempty"`
	Vitamins []Nutrient   `json:"vitamins,omitempty"`
	Minerals []Nutrient   `json:"minerals,omitempty"`
}

// Empty reports whether nothing was extracted into the profile.
func (p *NutritionalProfile) Empty() bool {
	return p == nil || (len(p.Values) == 0 && len(p.Vitamins) == 0 && len(p.Minerals) == 0)
}

// AllergenInfo lists allergen declarations found in an allergen section.
type AllergenInfo struct {
	Contains   []string `json:"contains"`
	MayContain []string `json:"may_contain"`
	FreeFrom   []string `json:"free_from"`
}

// Threshold is a regulatory bound attached to a data point.
type Threshold struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Unit string   `json:"unit"`
}

// DataPoint is a flattened, unit-tagged measurement ready for rule evaluation.
type DataPoint struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Value     Value           `json:"value"`
	Unit      string          `json:"unit,omitempty"`
	Threshold *Threshold      `json:"threshold,omitempty"`
	Status    DataPointStatus `json:"status"`
	Source    string          `json:"source"`
}

// ParsedReport is the result of parsing one lab report.
type ParsedReport struct {
	LabFormat LabFormat `json:"lab_format"`
	ReportHeader

	Microbiological  Measurements        `json:"microbiological,omitempty"`
	HeavyMetals      Measurements        `json:"heavy_metals,omitempty"`
	Pesticides       *PesticideResults   `json:"pesticides,omitempty"`
	Nutritional      *NutritionalProfile `json:"nutritional,omitempty"`
	Allergens        *AllergenInfo       `json:"allergens,omitempty"`
	PhysicalChemical Measurements        `json:"physical_chemical,omitempty"`

	DataPoints       []DataPoint `json:"data_points"`
	Confidence       int         `json:"confidence"`
	ExtractionErrors []string    `json:"extraction_errors"`
	RawText          string      `json:"raw_text,omitempty"`
}
