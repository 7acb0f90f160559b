package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeCLI        = "70000"
	CodeSubprocess = "71000"
	CodeBanner     = "72000"
	CodeConfigRead = "73000"
	CodeParse      = "74000"
	CodeCredential = "75000"
	CodeSettings   = "76000"
)

const (
	DescCLI        = "CLI/argument validation error"
	DescSubprocess = "Subprocess error"
	DescBanner     = "Banner error"
	DescConfigRead = "Config file read error"
	DescParse      = "Config file parse error"
	DescCredential = "Credential error"
	DescSettings   = "Settings error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeSubprocess, Description: DescSubprocess},
	{Code: CodeBanner, Description: DescBanner},
	{Code: CodeConfigRead, Description: DescConfigRead},
	{Code: CodeParse, Description: DescParse},
	{Code: CodeCredential, Description: DescCredential},
	{Code: CodeSettings, Description: DescSettings},
}

var registryMap = func() map[string]string {
	m := make(map[string]string, len(registryEntries))
	for _, entry := range registryEntries {
		m[entry.Code] = entry.Description
	}
	return m
}()

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	desc, ok := registryMap[code]
	return desc, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}
