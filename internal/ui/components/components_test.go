package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestOptionListCursor(t *testing.T) {
	o := NewOptionList("Pick one", []string{"a", "b", "c"})
	down := tea.KeyPressMsg{Code: tea.KeyDown}
	up := tea.KeyPressMsg{Code: tea.KeyUp}

	o = o.Update(up)
	if o.Cursor != 0 {
		t.Errorf("cursor moved above first option: %d", o.Cursor)
	}
	o = o.Update(down).Update(down).Update(down)
	if o.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", o.Cursor)
	}
	o = o.Update(up)
	if o.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", o.Cursor)
	}
}

func TestOptionListFrozenOnceRevealed(t *testing.T) {
	o := NewOptionList("", []string{"a", "b"})
	o.Chosen, o.Correct = 0, 1
	o = o.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if o.Cursor != 0 {
		t.Errorf("cursor moved after reveal: %d", o.Cursor)
	}
}

func TestOptionListViewLettersOptions(t *testing.T) {
	v := NewOptionList("Which?", []string{"first", "second"}).View()
	for _, want := range []string{"Which?", "A)  first", "B)  second"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func TestProgressBarClampsPercent(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{-5, "0%"},
		{40, "40%"},
		{250, "100%"},
	}
	for _, tt := range tests {
		v := NewProgressBar("", tt.percent, true, 30).View()
		if !strings.Contains(v, tt.want) {
			t.Errorf("percent %d: view %q missing %q", tt.percent, v, tt.want)
		}
	}
}

func TestCardWidth(t *testing.T) {
	tests := []struct {
		frame, want int
	}{
		{10, 20},
		{60, 54},
		{200, 76},
	}
	for _, tt := range tests {
		if got := CardWidth(tt.frame); got != tt.want {
			t.Errorf("CardWidth(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}
