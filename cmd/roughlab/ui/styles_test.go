package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("ROUGHLAB_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when ROUGHLAB_DARK_MODE=1")
	}

	t.Setenv("ROUGHLAB_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when ROUGHLAB_DARK_MODE is unset")
	}
}

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Fatalf("expected dark theme for name dark")
	}
	if ThemeByName("light").IsDark {
		t.Fatalf("expected light theme for name light")
	}
}
