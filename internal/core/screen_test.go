package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 4)

	if s.Width() != 20 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 20x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("size = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, expected empty", s.String())
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '●', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != '●' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red ●", c)
	}
	s.Set(5, 5, 'X')
	if c := s.GetCell(5, 5); c.Color != ColorDefault || s.Get(5, 5) != 'X' {
		t.Errorf("Set should reset color, got %+v", c)
	}

	for _, p := range [][2]int{{-1, 0}, {100, 0}, {0, -1}, {0, 100}} {
		s.Set(p[0], p[1], 'A')
		if s.Get(p[0], p[1]) != ' ' {
			t.Errorf("out of bounds Get(%d, %d) should return space", p[0], p[1])
		}
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawTextColored(0, 1, "abcd", ColorBlue)

	s.Clear()
	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("after Clear String() = %q", got)
	}
	if s.GetCell(0, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
		next     int
	}{
		{"ascii", 1, "Hi", " Hi       ", 3},
		{"clipped left", -1, "abc", "bc        ", 2},
		{"clipped right", 8, "xyz", "        xy", 11},
		{"wide runes", 0, "宝石", "宝石      ", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			next := s.DrawText(tt.x, 0, tt.text)
			if next != tt.next {
				t.Errorf("DrawText returned %d, expected %d", next, tt.next)
			}
			if got := s.Row(0); got != tt.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorYellow)

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(4, 0).Color != ColorYellow || s.GetCell(3, 0).Color != ColorDefault {
		t.Error("only the text should be colored")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorGray)

	expected := strings.Join([]string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", got, expected)
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 4), ColorGray)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("a box narrower than 2 should draw nothing")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, 'z', ColorGreen)

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 2x3", s.Width(), s.Height())
	}
	if s.Row(0) != "ab" {
		t.Errorf("content lost on resize: %q", s.Row(0))
	}
	if s.Row(2) != "  " {
		t.Errorf("new row should be blank: %q", s.Row(2))
	}

	s.Resize(4, 2)
	if s.Get(3, 1) != ' ' {
		t.Error("cells cut by a shrink should not come back")
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}
