package definevalidator

// Version is the validator version reported in audit trails and the CLI.
const Version = "1.0.0"

// SupportedDefineVersions lists the define.xml schema versions the schema
// layer can validate against.
var SupportedDefineVersions = []string{"2.0", "2.1"}
