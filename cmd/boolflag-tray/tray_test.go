package main

import (
	"testing"

	"github.com/Mavwarf/boolflag/internal/speech"
)

func TestTooltip(t *testing.T) {
	if got := tooltip(3); got != "Boolean flag - Clicks: 3" {
		t.Errorf("tooltip(3) = %q", got)
	}
}

func TestVoiceLabel(t *testing.T) {
	tests := []struct {
		v         speech.Voice
		ok, avail bool
		want      string
	}{
		{speech.Voice{Name: "Karen"}, true, true, "Voice: Karen"},
		{speech.Voice{}, false, true, "Voice: default"},
		{speech.Voice{}, false, false, "Voice: no speech engine"},
	}
	for _, tt := range tests {
		if got := voiceLabel(tt.v, tt.ok, tt.avail); got != tt.want {
			t.Errorf("voiceLabel(%+v, %v, %v) = %q, want %q", tt.v, tt.ok, tt.avail, got, tt.want)
		}
	}
}
