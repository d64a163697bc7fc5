package definevalidator

// Severity classifies how serious a validation finding is.
// The order is total: Critical > Major > Minor > Info.
type Severity string

const (
	// SeverityCritical indicates a defect that makes the submission unacceptable.
	SeverityCritical Severity = "CRITICAL"
	// SeverityMajor indicates a defect that must be reviewed before filing.
	SeverityMajor Severity = "MAJOR"
	// SeverityMinor indicates a quality issue that should be corrected.
	SeverityMinor Severity = "MINOR"
	// SeverityInfo indicates advisory feedback.
	SeverityInfo Severity = "INFO"
)

// Rank returns the position of the severity in the total order.
// Higher rank means more severe. Unknown severities rank below Info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityMinor:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// Valid reports whether s is one of the four recognized severities.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// CheckCode identifies the rule check that produced a finding.
type CheckCode string

const (
	// CodeStudyMissing indicates the ODM document has no Study element.
	CodeStudyMissing CheckCode = "study_missing"
	// CodeMetaDataVersionMissing indicates no MetaDataVersion element exists.
	CodeMetaDataVersionMissing CheckCode = "metadataversion_missing"

	// CodeDerivedNoMethod indicates a Derived variable without a MethodOID.
	CodeDerivedNoMethod CheckCode = "derived_no_method"
	// CodeInvalidCodeListRef indicates a CodeListOID that resolves to no CodeList.
	CodeInvalidCodeListRef CheckCode = "invalid_codelist_ref"
	// CodeMissingStructure indicates a dataset without a def:Structure attribute.
	CodeMissingStructure CheckCode = "missing_structure"

	// CodeMissingTerm indicates a required controlled term absent from a codelist.
	CodeMissingTerm CheckCode = "missing_term"
	// CodeCodeListNotFound indicates a configured codelist was not located.
	CodeCodeListNotFound CheckCode = "codelist_not_found"
	// CodeNoStandardRefs indicates no codelist carries a standard reference.
	CodeNoStandardRefs CheckCode = "no_standard_refs"

	// CodeVariableNoLabel indicates a variable without a description.
	CodeVariableNoLabel CheckCode = "variable_no_label"
	// CodeDatasetNoDescription indicates a dataset without a description.
	CodeDatasetNoDescription CheckCode = "dataset_no_description"
	// CodeMethodShortDoc indicates a method description under the minimum length.
	CodeMethodShortDoc CheckCode = "method_short_doc"

	// CodeMethodNoDescription indicates a method with an empty description.
	CodeMethodNoDescription CheckCode = "method_no_description"
	// CodeMethodBrief indicates a very brief method description.
	CodeMethodBrief CheckCode = "method_brief"
	// CodeMethodVerbose indicates a very long description without code content.
	CodeMethodVerbose CheckCode = "method_verbose"
	// CodeNoMethods indicates the document defines no computational methods.
	CodeNoMethods CheckCode = "no_methods"

	// CodeOrphanReference indicates a referenced OID that is never defined.
	CodeOrphanReference CheckCode = "orphan_reference"
	// CodeDuplicateOID indicates an OID defined more than once.
	CodeDuplicateOID CheckCode = "duplicate_oid"
	// CodeOrderNonNumeric indicates a non-numeric ItemRef OrderNumber.
	CodeOrderNonNumeric CheckCode = "order_non_numeric"
	// CodeOrderDuplicate indicates duplicate OrderNumbers within a dataset.
	CodeOrderDuplicate CheckCode = "order_duplicate"
	// CodeOrderNonSequential indicates OrderNumbers out of ascending order.
	CodeOrderNonSequential CheckCode = "order_non_sequential"
	// CodeEmptyValueList indicates a ValueListDef with no ItemRef children.
	CodeEmptyValueList CheckCode = "empty_value_list"

	// CodeSchemaViolation indicates an XSD schema conformance error.
	CodeSchemaViolation CheckCode = "schema_violation"

	// CodeFindingsCapped summarizes findings suppressed by the per-check cap.
	CodeFindingsCapped CheckCode = "findings_capped"
	// CodeCheckEvaluation indicates a check failed to evaluate, not a
	// validation failure of the document itself.
	CodeCheckEvaluation CheckCode = "check_evaluation"
)

// LayerID identifies one validation layer.
type LayerID string

const (
	LayerSchema       LayerID = "schema"
	LayerStructure    LayerID = "structure"
	LayerBusiness     LayerID = "business"
	LayerTerminology  LayerID = "terminology"
	LayerCompleteness LayerID = "completeness"
	LayerMethods      LayerID = "methods"
	LayerPatterns     LayerID = "patterns"
)

// LayerOrder is the fixed execution and reporting order of all layers.
var LayerOrder = []LayerID{
	LayerSchema,
	LayerStructure,
	LayerBusiness,
	LayerTerminology,
	LayerCompleteness,
	LayerMethods,
	LayerPatterns,
}

// Finding is a single reported validation issue.
// Findings are immutable once created; rule checks are their only producer.
type Finding struct {
	// Code identifies the rule check that produced the finding
	Code CheckCode `json:"code"`

	// Severity of the finding
	Severity Severity `json:"severity"`

	// Layer that produced the finding
	Layer LayerID `json:"layer"`

	// Subject is the entity name or OID the finding is about
	Subject string `json:"subject,omitempty"`

	// Message is the human-readable description
	Message string `json:"message"`

	// Context carries additional key/value diagnostic fields
	Context map[string]string `json:"context,omitempty"`
}

// IsEvaluationFailure reports whether the finding records a failure to
// evaluate a check rather than a defect in the document.
func (f Finding) IsEvaluationFailure() bool {
	return f.Code == CodeCheckEvaluation
}

// IsCritical reports whether the finding has CRITICAL severity.
func (f Finding) IsCritical() bool {
	return f.Severity == SeverityCritical
}

// String returns a human-readable representation of the finding.
func (f Finding) String() string {
	s := string(f.Severity) + " [" + string(f.Code) + "] " + f.Message
	if f.Subject != "" {
		s += " (" + f.Subject + ")"
	}
	return s
}

// FindingBuilder provides a fluent API for building findings.
type FindingBuilder struct {
	finding Finding
}

// NewFinding creates a new FindingBuilder.
func NewFinding(severity Severity, code CheckCode) *FindingBuilder {
	return &FindingBuilder{
		finding: Finding{
			Severity: severity,
			Code:     code,
		},
	}
}

// Critical creates a CRITICAL finding builder.
func Critical(code CheckCode) *FindingBuilder {
	return NewFinding(SeverityCritical, code)
}

// Major creates a MAJOR finding builder.
func Major(code CheckCode) *FindingBuilder {
	return NewFinding(SeverityMajor, code)
}

// Minor creates a MINOR finding builder.
func Minor(code CheckCode) *FindingBuilder {
	return NewFinding(SeverityMinor, code)
}

// Info creates an INFO finding builder.
func Info(code CheckCode) *FindingBuilder {
	return NewFinding(SeverityInfo, code)
}

// Message sets the finding message.
func (b *FindingBuilder) Message(msg string) *FindingBuilder {
	b.finding.Message = msg
	return b
}

// Subject sets the entity name or OID the finding is about.
func (b *FindingBuilder) Subject(subject string) *FindingBuilder {
	b.finding.Subject = subject
	return b
}

// Layer sets the layer that produced the finding.
func (b *FindingBuilder) Layer(layer LayerID) *FindingBuilder {
	b.finding.Layer = layer
	return b
}

// Context adds one diagnostic key/value pair.
func (b *FindingBuilder) Context(key, value string) *FindingBuilder {
	if b.finding.Context == nil {
		b.finding.Context = make(map[string]string, 2)
	}
	b.finding.Context[key] = value
	return b
}

// Build returns the constructed finding.
func (b *FindingBuilder) Build() Finding {
	return b.finding
}
