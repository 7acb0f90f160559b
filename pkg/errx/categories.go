package errx

// CreateByCode creates an Error using the provided code, description, and message.
func CreateByCode(code, description, message string, cause error) *Error {
	if cause != nil {
		return Wrap(code, description, message, cause)
	}
	return New(code, description, message)
}

// FromSentinel creates an Error whose category is resolved from sentinel by lookup.
// Unknown sentinels and unregistered codes fall back to the CLI category; an empty
// description is filled from the registry.
func FromSentinel(sentinel error, lookup func(error) (code, description string), message string, cause error) *Error {
	code, desc := lookup(sentinel)
	if !IsValidCode(code) {
		code = CodeCLI
		desc = DescCLI
	}
	if desc == "" {
		desc, _ = DescriptionFor(code)
	}
	return CreateByCode(code, desc, message, cause).WithBase(sentinel)
}

// CLI creates a CLI/argument validation error.
func CLI(message string) *Error {
	return New(CodeCLI, DescCLI, message)
}

// Banner creates an error for banner text that did not carry the expected marker.
func Banner(message string) *Error {
	return New(CodeBanner, DescBanner, message)
}

// WrapConfigRead wraps a filesystem error hit while reading a config file.
func WrapConfigRead(message string, cause error) *Error {
	return Wrap(CodeConfigRead, DescConfigRead, message, cause)
}

// WrapParse wraps a decoding error for a config file.
func WrapParse(message string, cause error) *Error {
	return Wrap(CodeParse, DescParse, message, cause)
}

// Credential creates an error for a config file missing required credential fields.
func Credential(message string) *Error {
	return New(CodeCredential, DescCredential, message)
}
