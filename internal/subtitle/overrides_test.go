package subtitle

import (
	"testing"

	"stitch/internal/manifest"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestApplyOverridesNilBlock(t *testing.T) {
	if got := ApplyOverrides(nil); got != DefaultStyleParams() {
		t.Fatalf("nil block should yield defaults, got %+v", got)
	}
}

func TestApplyOverridesPartial(t *testing.T) {
	got := ApplyOverrides(&manifest.StyleBlock{
		FontName: strPtr("Futura"),
		FontSize: intPtr(36),
		Bold:     boolPtr(true),
	})

	want := DefaultStyleParams()
	want.FontName = "Futura"
	want.FontSize = 36
	want.Bold = true
	if got != want {
		t.Fatalf("override mismatch:\n got %+v\nwant %+v", got, want)
	}
	if got.PrimaryColour != "&H00FFFFFF" {
		t.Fatalf("untouched fields should keep defaults, got %q", got.PrimaryColour)
	}
}
