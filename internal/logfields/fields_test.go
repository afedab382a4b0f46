package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Stage", KeyStage, "walk", Stage("walk")},
		{"Path", KeyPath, "/tmp/site", Path("/tmp/site")},
		{"File", KeyFile, "index.dj", File("index.dj")},
		{"Source", KeySource, "./docs", Source("./docs")},
		{"Output", KeyOutput, "./output", Output("./output")},
		{"URL", KeyURL, "http://example", URL("http://example")},
		{"Format", KeyFormat, "djot", Format("djot")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestIntHelpers(t *testing.T) {
	if a := Depth(3); a.Key != KeyDepth || a.Value.Int64() != 3 {
		t.Fatalf("Depth: got %v=%v", a.Key, a.Value)
	}
	if a := Pages(7); a.Key != KeyPages || a.Value.Int64() != 7 {
		t.Fatalf("Pages: got %v=%v", a.Key, a.Value)
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("nil error should map to empty string, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Fatalf("expected boom, got %q", a.Value.String())
	}
}
