package progress

import "testing"

func TestStepBarString(t *testing.T) {
	bar := NewStepBar("Installing", 4)
	bar.Set(2)

	want := "Installing  50% ▕██  ▏ 2/4"
	if got := bar.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStepBarClamp(t *testing.T) {
	bar := NewStepBar("Installing", 4)
	bar.Set(9)

	if bar.current != 4 {
		t.Errorf("current = %d, want 4 (clamped to total)", bar.current)
	}

	want := "Installing 100% ▕████▏ 4/4"
	if got := bar.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
