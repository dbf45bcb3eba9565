package constants

const (
	SchemaVersion10 = "1.0"
	SchemaVersion11 = "1.1"
	SchemaVersion12 = "1.2"
)

var (
	// SchemaRootProperty is the property holding the template body for each schema version.
	SchemaRootProperty = map[string]string{
		SchemaVersion10: "fundingTemplate",
		SchemaVersion11: "fundingStreamTemplate",
		SchemaVersion12: "fundingTemplate",
	}

	// EnumValuesRequired marks versions whose calculations can declare allowed enum values.
	EnumValuesRequired = map[string]bool{
		SchemaVersion12: true,
	}
)
