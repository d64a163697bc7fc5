package layer

import (
	dv "github.com/definexml/validator"
)

// NewStructureLayer checks the required ODM skeleton: a define.xml document
// must contain a Study element and a MetaDataVersion element. MAJOR
// findings here are blocking.
func NewStructureLayer() Layer {
	return Layer{
		ID: dv.LayerStructure,
		Checks: []Check{
			{Name: "study_present", Run: checkStudyPresent},
			{Name: "metadataversion_present", Run: checkMetaDataVersionPresent},
		},
	}
}

func checkStudyPresent(in Input) []dv.Finding {
	if len(in.Doc.Find("odm:Study")) > 0 {
		return nil
	}
	return []dv.Finding{
		dv.Major(dv.CodeStudyMissing).
			Message("Document contains no Study element").
			Build(),
	}
}

func checkMetaDataVersionPresent(in Input) []dv.Finding {
	if len(in.Doc.Find("odm:MetaDataVersion")) > 0 {
		return nil
	}
	return []dv.Finding{
		dv.Major(dv.CodeMetaDataVersionMissing).
			Message("Document contains no MetaDataVersion element").
			Build(),
	}
}
