package city

import (
	"testing"

	"worldforge/pkg/terrain"
)

func TestGenerateUniqueNameNoDuplicates(t *testing.T) {
	reg := NewCityNameRegistry()
	rng := terrain.NewRNG(1)
	seen := make(map[string]bool)
	for i := 0; i < 300; i++ {
		name := reg.GenerateUniqueName(map[string]bool{}, rng)
		if seen[name] {
			t.Fatalf("duplicate name %q at iteration %d", name, i)
		}
		seen[name] = true
	}
}

func TestGenerateUniqueNameRespectsExisting(t *testing.T) {
	reg := NewCityNameRegistry()
	rng := terrain.NewRNG(2)
	existing := map[string]bool{baseNames[0]: true}
	name := reg.GenerateUniqueName(existing, rng)
	if name == baseNames[0] {
		t.Errorf("expected registry to avoid externally-used name %q", baseNames[0])
	}
}

func TestOverflowNamesMatchPattern(t *testing.T) {
	reg := NewCityNameRegistry()
	rng := terrain.NewRNG(3)
	for _, n := range baseNames {
		reg.MarkNameAsUsed(n)
	}
	name := reg.GenerateUniqueName(map[string]bool{}, rng)
	if !overflowPattern(name) {
		t.Errorf("overflow name %q does not match /^.+ \\d+$/", name)
	}
}

func TestReleaseNameForReuse(t *testing.T) {
	reg := NewCityNameRegistry()
	reg.MarkNameAsUsed("Fairhaven")
	reg.ReleaseNameForReuse("Fairhaven")
	if reg.used["Fairhaven"] {
		t.Error("expected name to be released")
	}
}

func overflowPattern(s string) bool {
	i := len(s) - 1
	digits := 0
	for i >= 0 && s[i] >= '0' && s[i] <= '9' {
		digits++
		i--
	}
	return digits > 0 && i > 0 && s[i] == ' '
}
