package definevalidator

import (
	"testing"
)

func TestSeverity_Rank(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeverityCritical, 4},
		{SeverityMajor, 3},
		{SeverityMinor, 2},
		{SeverityInfo, 1},
		{Severity("BOGUS"), 0},
		{Severity(""), 0},
	}

	for _, tt := range tests {
		if got := tt.severity.Rank(); got != tt.want {
			t.Errorf("Severity(%q).Rank() = %d; want %d", tt.severity, got, tt.want)
		}
	}
}

func TestSeverity_Order(t *testing.T) {
	// The order must be total: CRITICAL > MAJOR > MINOR > INFO.
	ordered := []Severity{SeverityInfo, SeverityMinor, SeverityMajor, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("%s.Rank() = %d not greater than %s.Rank() = %d",
				ordered[i], ordered[i].Rank(), ordered[i-1], ordered[i-1].Rank())
		}
	}
}

func TestSeverity_Valid(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityMajor, SeverityMinor, SeverityInfo} {
		if !s.Valid() {
			t.Errorf("Severity(%q).Valid() = false; want true", s)
		}
	}
	if Severity("FATAL").Valid() {
		t.Error(`Severity("FATAL").Valid() = true; want false`)
	}
}

func TestFinding_IsEvaluationFailure(t *testing.T) {
	tests := []struct {
		code CheckCode
		want bool
	}{
		{CodeCheckEvaluation, true},
		{CodeOrphanReference, false},
		{CodeFindingsCapped, false},
	}

	for _, tt := range tests {
		f := Finding{Code: tt.code}
		if got := f.IsEvaluationFailure(); got != tt.want {
			t.Errorf("Finding{Code: %s}.IsEvaluationFailure() = %v; want %v", tt.code, got, tt.want)
		}
	}
}

func TestFinding_String(t *testing.T) {
	tests := []struct {
		finding Finding
		want    string
	}{
		{
			finding: Finding{
				Severity: SeverityCritical,
				Code:     CodeOrphanReference,
				Message:  "Referenced OID not defined",
			},
			want: `CRITICAL [orphan_reference] Referenced OID not defined`,
		},
		{
			finding: Finding{
				Severity: SeverityMinor,
				Code:     CodeVariableNoLabel,
				Message:  "Variable missing label",
				Subject:  "AGE",
			},
			want: `MINOR [variable_no_label] Variable missing label (AGE)`,
		},
	}

	for _, tt := range tests {
		if got := tt.finding.String(); got != tt.want {
			t.Errorf("Finding.String() = %q; want %q", got, tt.want)
		}
	}
}

func TestFindingBuilder(t *testing.T) {
	f := Critical(CodeDuplicateOID).
		Subject("IT.DM.AGE").
		Message("OID defined twice").
		Layer(LayerPatterns).
		Context("occurrences", "2").
		Build()

	if f.Severity != SeverityCritical {
		t.Errorf("Severity = %s; want %s", f.Severity, SeverityCritical)
	}
	if f.Code != CodeDuplicateOID {
		t.Errorf("Code = %s; want %s", f.Code, CodeDuplicateOID)
	}
	if f.Subject != "IT.DM.AGE" {
		t.Errorf("Subject = %q; want %q", f.Subject, "IT.DM.AGE")
	}
	if f.Layer != LayerPatterns {
		t.Errorf("Layer = %s; want %s", f.Layer, LayerPatterns)
	}
	if f.Context["occurrences"] != "2" {
		t.Errorf("Context[occurrences] = %q; want %q", f.Context["occurrences"], "2")
	}
}

func TestFindingBuilder_SeverityConstructors(t *testing.T) {
	tests := []struct {
		build func(CheckCode) *FindingBuilder
		want  Severity
	}{
		{Critical, SeverityCritical},
		{Major, SeverityMajor},
		{Minor, SeverityMinor},
		{Info, SeverityInfo},
	}

	for _, tt := range tests {
		f := tt.build(CodeMissingTerm).Build()
		if f.Severity != tt.want {
			t.Errorf("constructor produced severity %s; want %s", f.Severity, tt.want)
		}
	}
}

func TestLayerOrder_CoversAllLayers(t *testing.T) {
	want := []LayerID{
		LayerSchema, LayerStructure, LayerBusiness, LayerTerminology,
		LayerCompleteness, LayerMethods, LayerPatterns,
	}
	if len(LayerOrder) != len(want) {
		t.Fatalf("len(LayerOrder) = %d; want %d", len(LayerOrder), len(want))
	}
	for i, id := range want {
		if LayerOrder[i] != id {
			t.Errorf("LayerOrder[%d] = %s; want %s", i, LayerOrder[i], id)
		}
	}
}
