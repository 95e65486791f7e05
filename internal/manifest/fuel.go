package manifest

import (
	"encoding/json"
	"strings"
)

// FileName is the manifest file the client writes into each install directory.
const FileName = "fuel.json"

// Command is one launch entry of the manifest.
type Command struct {
	Command               string   `json:"Command"`
	Args                  []string `json:"Args"`
	WorkingSubdirOverride *string  `json:"WorkingSubdirOverride"`
	ClientID              *string  `json:"ClientId"`
	AuthScopes            []string `json:"AuthScopes"`
}

// Fuel is the decoded fuel.json document.
type Fuel struct {
	SchemaVersion json.RawMessage `json:"SchemaVersion"`
	Main          Command         `json:"Main"`
	PostInstall   []Command       `json:"PostInstall"`
}

// Version returns SchemaVersion as text whether it was written as a string or a number.
func (f Fuel) Version() string {
	raw := strings.TrimSpace(string(f.SchemaVersion))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(f.SchemaVersion, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return raw
}

// ProtocolHandoff reports whether Main asks to be started through the client.
func (f Fuel) ProtocolHandoff() bool {
	return f.Main.ClientID != nil
}
