package domain

// LabFormat identifies the issuing laboratory's document template.
type LabFormat string

const (
	LabFormatEurofins      LabFormat = "EUROFINS"
	LabFormatSGS           LabFormat = "SGS"
	LabFormatIntertek      LabFormat = "INTERTEK"
	LabFormatBureauVeritas LabFormat = "BUREAU_VERITAS"
	LabFormatALS           LabFormat = "ALS"
	LabFormatUnknown       LabFormat = "UNKNOWN"
)

// TestStatus is the per-measurement status assigned during extraction.
type TestStatus string

const (
	TestStatusPass    TestStatus = "PASS"
	TestStatusFail    TestStatus = "FAIL"
	TestStatusWarning TestStatus = "WARNING"
)

// DataPointStatus is the status carried by a flattened data point.
type DataPointStatus string

const (
	DataPointPassed        DataPointStatus = "PASSED"
	DataPointFailed        DataPointStatus = "FAILED"
	DataPointWarning       DataPointStatus = "WARNING"
	DataPointNotApplicable DataPointStatus = "NOT_APPLICABLE"
)

// DataPointSourceLabReport marks data points that came from a parsed lab report.
const DataPointSourceLabReport = "LAB_REPORT"

// ComplianceStatus is the verdict of a single regulatory check.
type ComplianceStatus string

const (
	ComplianceApproved ComplianceStatus = "approved"
	ComplianceWarning  ComplianceStatus = "warning"
	ComplianceRejected ComplianceStatus = "rejected"
)

// VerdictStatus is the overall verdict for a product analysis.
type VerdictStatus string

const (
	VerdictApproved    VerdictStatus = "approved"
	VerdictConditional VerdictStatus = "conditional"
	VerdictRejected    VerdictStatus = "rejected"
)

// Severity is a rule's criticality tier.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// RuleCategory groups limit tables.
type RuleCategory string

const (
	CategoryMicrobiological RuleCategory = "microbiological"
	CategoryHeavyMetal      RuleCategory = "heavy_metal"
	CategoryPesticide       RuleCategory = "pesticide"
	CategoryMycotoxin       RuleCategory = "mycotoxin"
	CategoryNutritional     RuleCategory = "nutritional"
)

// ChemicalCategories lists the categories accepted by chemical validation.
var ChemicalCategories = []RuleCategory{CategoryHeavyMetal, CategoryPesticide, CategoryMycotoxin}

// IsChemical reports whether c names a chemical limit table.
func (c RuleCategory) IsChemical() bool {
	for _, cc := range ChemicalCategories {
		if c == cc {
			return true
		}
	}
	return false
}

// Readable media types. Anything else needs upstream text extraction first.
const (
	MediaTypePlainText = "text/plain"
	MediaTypeCSV       = "text/csv"
)

// ExportFormat is a supported export file format.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
