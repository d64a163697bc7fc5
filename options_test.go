package definevalidator

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()

	if len(o.RequiredTerminologySets["RACE"]) != 9 {
		t.Errorf("RACE term count = %d; want 9", len(o.RequiredTerminologySets["RACE"]))
	}
	if len(o.RequiredTerminologySets["SEX"]) != 3 {
		t.Errorf("SEX term count = %d; want 3", len(o.RequiredTerminologySets["SEX"]))
	}
	if o.FindingCapPerCheck != 10 {
		t.Errorf("FindingCapPerCheck = %d; want 10", o.FindingCapPerCheck)
	}
	if o.SeverityOverrides[CodeDerivedNoMethod] != SeverityCritical {
		t.Errorf("override for derived_no_method = %s; want CRITICAL",
			o.SeverityOverrides[CodeDerivedNoMethod])
	}
	if o.SeverityOverrides[CodeInvalidCodeListRef] != SeverityCritical {
		t.Errorf("override for invalid_codelist_ref = %s; want CRITICAL",
			o.SeverityOverrides[CodeInvalidCodeListRef])
	}
}

func TestOptions_SeverityFor(t *testing.T) {
	o := DefaultOptions()

	tests := []struct {
		code CheckCode
		def  Severity
		want Severity
	}{
		{CodeDerivedNoMethod, SeverityMajor, SeverityCritical}, // overridden
		{CodeMissingStructure, SeverityMajor, SeverityMajor},   // override equals default
		{CodeVariableNoLabel, SeverityMinor, SeverityMinor},    // no override
	}

	for _, tt := range tests {
		if got := o.SeverityFor(tt.code, tt.def); got != tt.want {
			t.Errorf("SeverityFor(%s, %s) = %s; want %s", tt.code, tt.def, got, tt.want)
		}
	}
}

func TestOptions_SeverityFor_IgnoresInvalidOverride(t *testing.T) {
	o := DefaultOptions()
	o.SeverityOverrides[CodeMissingTerm] = Severity("BOGUS")

	if got := o.SeverityFor(CodeMissingTerm, SeverityMajor); got != SeverityMajor {
		t.Errorf("SeverityFor with invalid override = %s; want default MAJOR", got)
	}
}

func TestOptions_Cap(t *testing.T) {
	tests := []struct {
		cap  int
		want int
	}{
		{10, 10},
		{3, 3},
		{0, 10},
		{-1, 10},
	}

	for _, tt := range tests {
		o := &Options{FindingCapPerCheck: tt.cap}
		if got := o.Cap(); got != tt.want {
			t.Errorf("Options{FindingCapPerCheck: %d}.Cap() = %d; want %d", tt.cap, got, tt.want)
		}
	}

	var nilOpts *Options
	if got := nilOpts.Cap(); got != 10 {
		t.Errorf("nil Options.Cap() = %d; want 10", got)
	}
}

func TestOptions_LayerEnabled(t *testing.T) {
	all := DefaultOptions()
	for _, id := range LayerOrder {
		if !all.LayerEnabled(id) {
			t.Errorf("default options: LayerEnabled(%s) = false; want true", id)
		}
	}

	restricted := DefaultOptions()
	WithLayers(LayerBusiness, LayerTerminology)(restricted)

	if !restricted.LayerEnabled(LayerBusiness) {
		t.Error("LayerEnabled(business) = false; want true")
	}
	if restricted.LayerEnabled(LayerPatterns) {
		t.Error("LayerEnabled(patterns) = true; want false")
	}
}

func TestWithTerminologySet_ReplacesOnlyKey(t *testing.T) {
	o := DefaultOptions()
	WithTerminologySet("SEX", []string{"M", "F"})(o)

	if len(o.RequiredTerminologySets["SEX"]) != 2 {
		t.Errorf("SEX term count = %d; want 2", len(o.RequiredTerminologySets["SEX"]))
	}
	if len(o.RequiredTerminologySets["RACE"]) != 9 {
		t.Errorf("RACE term count = %d; want 9 (untouched)", len(o.RequiredTerminologySets["RACE"]))
	}
}

func TestWithSeverityOverride(t *testing.T) {
	o := DefaultOptions()
	WithSeverityOverride(CodeMissingTerm, SeverityCritical)(o)

	if o.SeverityOverrides[CodeMissingTerm] != SeverityCritical {
		t.Errorf("override = %s; want CRITICAL", o.SeverityOverrides[CodeMissingTerm])
	}
	// Defaults for other codes survive.
	if o.SeverityOverrides[CodeDerivedNoMethod] != SeverityCritical {
		t.Error("pre-existing override lost")
	}
}

func TestQualityPolicy_ContainsCode(t *testing.T) {
	p := DefaultQualityPolicy()

	tests := []struct {
		text string
		want bool
	}{
		{"PROC SORT data out", true},
		{"if AGE > 65 then GROUP is elderly", true},
		{"AGE = RFSTDTC - BRTHDTC", true},
		{"The value is copied from the CRF page without modification", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := p.ContainsCode(tt.text); got != tt.want {
			t.Errorf("ContainsCode(%q) = %v; want %v", tt.text, got, tt.want)
		}
	}
}

func TestDefaultQualityPolicy(t *testing.T) {
	p := DefaultQualityPolicy()
	if p.MinDocChars != 20 || p.BriefThreshold != 50 || p.VerboseThreshold != 1000 {
		t.Errorf("DefaultQualityPolicy() = %+v; want 20/50/1000 thresholds", p)
	}
}
