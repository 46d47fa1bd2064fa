package render

import (
	"testing"

	termbox "github.com/nsf/termbox-go"
)

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want int
		ok   bool
	}{
		{ColorDefault, 0, false},
		{ColorRed, 1, true},
		{ColorBrightWhite, 15, true},
		{ColorOrange, 208, true},
	}
	for _, tt := range tests {
		got, ok := tt.c.ANSI()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%d.ANSI() = %d,%v want %d,%v", tt.c, got, ok, tt.want, tt.ok)
		}
	}
}

func TestColorTermboxBright(t *testing.T) {
	if got := ColorBrightRed.Termbox(); got&termbox.AttrBold == 0 {
		t.Errorf("bright red should carry bold, got %v", got)
	}
	if got := ColorDefault.Termbox(); got != termbox.ColorDefault {
		t.Errorf("default = %v, want ColorDefault", got)
	}
}
