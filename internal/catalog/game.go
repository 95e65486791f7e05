package catalog

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// LaunchKind classifies how a game is started.
type LaunchKind int

const (
	// Unresolved games cannot be launched.
	Unresolved LaunchKind = iota
	// Direct games are started by spawning Command.
	Direct
	// Indirect games are started by handing URL to the platform URL handler.
	Indirect
)

func (k LaunchKind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Indirect:
		return "indirect"
	default:
		return "unresolved"
	}
}

// Launch is the resolved launch descriptor. At most one of Command and URL is
// populated by the manifest resolver.
type Launch struct {
	Command               string   `json:"command,omitempty"`
	Args                  []string `json:"args,omitempty"`
	WorkingSubdirOverride string   `json:"working_subdir_override,omitempty"`
	URL                   string   `json:"launch_url,omitempty"`
}

// Kind reports the launch strategy. A descriptor carrying both a command and a
// URL reports Direct; the launcher rejects that combination separately.
func (l Launch) Kind() LaunchKind {
	switch {
	case l.Command != "":
		return Direct
	case l.URL != "":
		return Indirect
	default:
		return Unresolved
	}
}

// Conflicting reports whether both strategies are populated.
func (l Launch) Conflicting() bool {
	return l.Command != "" && l.URL != ""
}

// Game is the persisted catalog entry.
//
// Registry-sourced fields are replaced on every refresh. ImagePath, Kids,
// Players and any unrecognised keys read from the cache are local and
// survive refreshes untouched.
type Game struct {
	ASIN             string `json:"asin"`
	Title            string `json:"title"`
	ImageURL         string `json:"image_url"`
	Installed        bool   `json:"installed"`
	InstallDirectory string `json:"install_directory,omitempty"`
	Launch

	ImagePath string `json:"image_path,omitempty"`
	Kids      *bool  `json:"kids,omitempty"`
	Players   *int   `json:"players,omitempty"`

	// Extra holds cache keys this version does not know about.
	Extra map[string]json.RawMessage `json:"-"`
}

var knownKeys = []string{
	"asin", "title", "image_url", "installed", "install_directory",
	"command", "args", "working_subdir_override", "launch_url",
	"image_path", "kids", "players",
}

type gameFields Game

// MarshalJSON writes the known fields followed by any preserved extra keys.
func (g Game) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(gameFields(g))
	if err != nil || len(g.Extra) == 0 {
		return data, err
	}

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for _, key := range slices.Sorted(maps.Keys(g.Extra)) {
		if slices.Contains(knownKeys, key) {
			continue
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		value := g.Extra[key]
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (g *Game) UnmarshalJSON(data []byte) error {
	var fields gameFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range knownKeys {
		delete(raw, key)
	}
	fields.Extra = nil
	if len(raw) > 0 {
		fields.Extra = raw
	}
	*g = Game(fields)
	return nil
}

// Clone returns a deep copy so callers can modify the result freely.
func (g Game) Clone() Game {
	out := g
	out.Args = slices.Clone(g.Args)
	if g.Kids != nil {
		v := *g.Kids
		out.Kids = &v
	}
	if g.Players != nil {
		v := *g.Players
		out.Players = &v
	}
	if g.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(g.Extra))
		for k, v := range g.Extra {
			out.Extra[k] = slices.Clone(v)
		}
	}
	return out
}
