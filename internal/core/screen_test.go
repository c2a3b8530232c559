package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	want := strings.Repeat("      \n", 2) + "      "
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)
	for _, p := range []Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		s.Set(p.X, p.Y, 'X')
		if got := s.Get(p.X, p.Y); got != ' ' {
			t.Errorf("Get(%d, %d) = %q, want space", p.X, p.Y, got)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("out of bounds write leaked into the buffer")
	}
}

func TestScreenCells(t *testing.T) {
	s := NewScreen(4, 2)
	amber := NewRGB(255, 176, 0)
	s.SetWithColor(1, 1, '@', amber)
	s.SetCell(2, 0, Cell{Rune: '#', Fg: ColorWhite, Bg: amber, HasBg: true})

	if c := s.GetCell(1, 1); c.Rune != '@' || c.Fg != amber || c.HasBg {
		t.Errorf("GetCell(1, 1) = %+v", c)
	}
	if c := s.GetCell(2, 0); !c.HasBg || c.Bg != amber {
		t.Errorf("background lost: %+v", c)
	}

	s.Clear()
	if c := s.GetCell(1, 1); c != blankCell {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"start", 0, "lit", "lit     "},
		{"clipped right", 6, "lit", "      li"},
		{"clipped left", -1, "lit", "it      "},
		{"runes", 1, "┌─┐", " ┌─┐    "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			s.DrawText(tc.x, 0, tc.text)
			if got := s.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 2)
	s.DrawTextCentered(0, "goal")
	s.DrawTextCenteredWithColor(1, "★ok★", ColorGray)

	lines := strings.Split(s.String(), "\n")
	if lines[0] != "   goal    " {
		t.Errorf("row 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "★ok★") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if c := s.GetCell(4, 1); c.Rune != 'o' || c.Fg != ColorGray {
		t.Errorf("centered text lost its color: %+v", c)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	r := NewRect(1, 0, 4, 3)
	s.DrawRect(r, '.')
	s.DrawBox(r)

	want := strings.Join([]string{
		" ┌──┐ ",
		" │..│ ",
		" └──┘ ",
		"      ",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("box:\n%s\nwant:\n%s", got, want)
	}

	// Degenerate boxes draw nothing.
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3))
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("thin box drew %q", s.String())
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if got, want := s.String(), "ab\nef\n  "; got != want {
		t.Errorf("shrunk = %q, want %q", got, want)
	}

	s.Resize(3, 1)
	if got := s.String(); got != "ab " {
		t.Errorf("regrown = %q", got)
	}
}
