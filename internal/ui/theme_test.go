package ui

import "testing"

func TestNextTheme_CyclesThroughAll(t *testing.T) {
	names := ThemeNames()
	current := names[0]
	seen := map[string]bool{current: true}
	for range names[1:] {
		current = NextTheme(current)
		seen[current] = true
	}
	if len(seen) != len(names) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(names))
	}
	if got := NextTheme(current); got != names[0] {
		t.Fatalf("NextTheme(%q) = %q, want wrap to %q", current, got, names[0])
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Dracula" {
		t.Fatalf("GetTheme(unknown).Name = %q, want Dracula", got)
	}
	if got := NextTheme("nope"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, ThemeNames()[0])
	}
}

func TestThemes_HaveAllColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Name != name {
			t.Fatalf("theme %q has Name %q", name, th.Name)
		}
		for field, v := range map[string]string{
			"Background": th.Background, "FocusBg": th.FocusBg, "SelectionBg": th.SelectionBg,
			"Border": th.Border, "BorderFocus": th.BorderFocus, "Text": th.Text,
			"Accent": th.Accent, "Danger": th.Danger, "Star": th.Star,
		} {
			if v == "" {
				t.Fatalf("theme %q: %s is empty", name, field)
			}
		}
	}
}
