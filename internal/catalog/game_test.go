package catalog_test

import (
	"encoding/json"
	"strings"
	"testing"

	"twitch/internal/catalog"
)

func TestGamePreservesUnknownKeys(t *testing.T) {
	input := `{"asin":"A1","title":"Alpha","image_url":"a.png","installed":true,` +
		`"install_directory":"/g/a","command":"/g/a/a.exe","args":["-w"],` +
		`"kids":true,"hidden":true,"tags":["co-op"]}`

	var g catalog.Game
	if err := json.Unmarshal([]byte(input), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Command != "/g/a/a.exe" || g.Kind() != catalog.Direct || g.Kids == nil || !*g.Kids {
		t.Fatalf("known fields not decoded: %+v", g)
	}
	if len(g.Extra) != 2 {
		t.Fatalf("expected 2 extra keys, got %v", g.Extra)
	}

	out, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"hidden":true`) || !strings.Contains(string(out), `"tags":["co-op"]`) {
		t.Fatalf("extra keys dropped: %s", out)
	}

	var back map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v (%s)", err, out)
	}
}

func TestGameReadsNullOptionalFields(t *testing.T) {
	input := `{"asin":"A1","title":"Alpha","image_url":"","installed":false,` +
		`"install_directory":null,"working_subdir_override":null,"command":null,"args":null}`
	var g catalog.Game
	if err := json.Unmarshal([]byte(input), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Kind() != catalog.Unresolved || g.Extra != nil {
		t.Fatalf("unexpected decode: %+v", g)
	}
}

func TestLaunchKind(t *testing.T) {
	tests := []struct {
		name     string
		launch   catalog.Launch
		want     catalog.LaunchKind
		conflict bool
	}{
		{"empty", catalog.Launch{}, catalog.Unresolved, false},
		{"direct", catalog.Launch{Command: "/x"}, catalog.Direct, false},
		{"indirect", catalog.Launch{URL: "twitch://fuel-launch/x"}, catalog.Indirect, false},
		{"both", catalog.Launch{Command: "/x", URL: "twitch://x"}, catalog.Direct, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.launch.Kind(); got != tt.want {
				t.Fatalf("Kind() = %s, want %s", got, tt.want)
			}
			if got := tt.launch.Conflicting(); got != tt.conflict {
				t.Fatalf("Conflicting() = %v, want %v", got, tt.conflict)
			}
		})
	}
}
