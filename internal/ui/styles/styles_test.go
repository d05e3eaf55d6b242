package styles

import (
	"testing"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
}

func TestFilterColors(t *testing.T) {
	for _, name := range []string{"all", "pending", "completed"} {
		if _, ok := FilterColors[name]; !ok {
			t.Errorf("FilterColors missing %q", name)
		}
	}
}

func TestThemeColors(t *testing.T) {
	// Verify colors are defined
	colors := []struct {
		name  string
		color string
	}{
		{"Base", string(Base)},
		{"Blue", string(Blue)},
		{"Red", string(Red)},
		{"Green", string(Green)},
		{"Yellow", string(Yellow)},
	}

	for _, c := range colors {
		t.Run(c.name, func(t *testing.T) {
			if c.color == "" {
				t.Errorf("%s color is empty", c.name)
			}
			// Catppuccin colors start with #
			if c.color[0] != '#' {
				t.Errorf("%s color doesn't start with #: %s", c.name, c.color)
			}
		})
	}
}
