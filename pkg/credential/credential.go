// Package credential loads the session credentials a wrapped developer tool stores in
// its JSON config file once an interactive login has completed.
package credential

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"bctl-devtools/pkg/errx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrConfigRead reports a config file that is missing or unreadable.
	ErrConfigRead = errors.New("config file not readable")
	// ErrConfigParse reports a config file that is not a JSON object.
	ErrConfigParse = errors.New("config file is not valid JSON")
	// ErrCredentialMissing reports a config file without tokenSet.id_token or sessionId.
	ErrCredentialMissing = errors.New("credential missing from config file")
)

// Field paths read from the config file.
const (
	FieldIDToken   = "tokenSet.id_token"
	FieldSessionID = "sessionId"
)

// Record holds the two credential fields of a config file.
type Record struct {
	IDToken   string
	SessionID string
}

// Field is one labeled value of a Record.
type Field struct {
	Label string
	Value string
}

// Fields returns the record's values in print order: id token first, then session id.
func (r Record) Fields() []Field {
	return []Field{
		{Label: "ID TOKEN", Value: r.IDToken},
		{Label: "SESSION ID", Value: r.SessionID},
	}
}

// Print writes each field as a "LABEL:" line followed by the value on its own line.
func Print(w io.Writer, r Record) error {
	for _, f := range r.Fields() {
		if _, err := fmt.Fprintf(w, "%s:\n%s\n", f.Label, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// Reader loads Records from config files.
type Reader struct {
	// LoginCommand is suggested to the user when the credential fields are missing,
	// e.g. `zli --configName dev login`.
	LoginCommand string
}

// Read loads path and returns its credential fields.
func (r Reader) Read(path string) (Record, error) {
	// #nosec G304 -- path is reported by the wrapped tool or given by the user.
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, errx.WrapConfigRead(fmt.Sprintf("error loading config file %s: %v", path, err), err).
			WithBase(ErrConfigRead).
			WithContext("path", path)
	}
	return r.Decode(path, data)
}

// Decode extracts the credential fields from data; path is only used in messages.
func (r Reader) Decode(path string, data []byte) (Record, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, errx.WrapParse(fmt.Sprintf("error parsing config file %s: %v", path, err), err).
			WithBase(ErrConfigParse).
			WithContext("path", path)
	}

	var missing []string
	sessionID, _ := doc["sessionId"].(string)
	if sessionID == "" {
		missing = append(missing, FieldSessionID)
	}
	var idToken string
	if tokenSet, ok := doc["tokenSet"].(map[string]any); ok {
		idToken, _ = tokenSet["id_token"].(string)
	}
	if idToken == "" {
		missing = append([]string{FieldIDToken}, missing...)
	}
	if len(missing) > 0 {
		return Record{}, errx.Credential(r.missingMessage(path, missing)).
			WithBase(ErrCredentialMissing).
			WithContextMap(map[string]any{"path": path, "missing": missing})
	}
	return Record{IDToken: idToken, SessionID: sessionID}, nil
}

func (r Reader) missingMessage(path string, missing []string) string {
	msg := fmt.Sprintf("config file %s has no %s", path, strings.Join(missing, " or "))
	if r.LoginCommand == "" {
		return msg + ", have you logged in yet?"
	}
	return fmt.Sprintf("%s, did you run `%s ...` yet?", msg, r.LoginCommand)
}
