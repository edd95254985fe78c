package render

import "testing"

func TestThemeByName_FallsBack_When_UnknownName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "orca", expected: "orca"},
		{name: "mono", expected: "mono"},
		{name: "default", expected: "default"},
		{name: "nope", expected: "default"},
		{name: "", expected: "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ThemeByName(tc.name).Name; got != tc.expected {
				t.Errorf("ThemeByName(%q).Name = %q, want %q", tc.name, got, tc.expected)
			}
		})
	}
}

func TestThemeStyle_TransformsHeader_When_ConfiguredUpper(t *testing.T) {
	theme := MonoTheme()
	theme.Transform = "upper"
	style := theme.Style()

	got := style(KindContainer, "  without fuel")
	if got != "  WITHOUT FUEL" {
		t.Errorf("styled header = %q, want %q", got, "  WITHOUT FUEL")
	}
}

func TestThemeStyle_TransformsHeader_When_ConfiguredTitle(t *testing.T) {
	theme := MonoTheme()
	theme.Transform = "title"
	style := theme.Style()

	got := style(KindContainer, "  without energy supply")
	if got != "  Without Energy Supply" {
		t.Errorf("styled header = %q, want %q", got, "  Without Energy Supply")
	}
}

func TestThemeStyle_LeavesTestLines_When_MonoTheme(t *testing.T) {
	style := MonoTheme().Style()

	for _, kind := range []LineKind{KindPass, KindFail, KindPending} {
		got := style(kind, "  ✓ first")
		if got != "  ✓ first" {
			t.Errorf("mono style for kind %d = %q, want passthrough", kind, got)
		}
	}
}
