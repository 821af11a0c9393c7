package speech

import "testing"

func TestSelectVoice(t *testing.T) {
	tests := []struct {
		name   string
		voices []Voice
		want   string
		ok     bool
	}{
		{
			name: "en-AU wins regardless of position",
			voices: []Voice{
				{Name: "Alex", Lang: "en-US"},
				{Name: "Thomas", Lang: "fr-FR"},
				{Name: "Karen", Lang: "en-AU"},
			},
			want: "Karen", ok: true,
		},
		{
			name: "locale match is case-insensitive",
			voices: []Voice{
				{Name: "Daniel", Lang: "en-GB"},
				{Name: "Lee", Lang: "EN-au"},
			},
			want: "Lee", ok: true,
		},
		{
			name: "posix locale tag",
			voices: []Voice{
				{Name: "Samantha", Lang: "en_US"},
				{Name: "Karen", Lang: "en_AU"},
			},
			want: "Karen", ok: true,
		},
		{
			name: "australia in name",
			voices: []Voice{
				{Name: "Google US English", Lang: "en-US"},
				{Name: "English (AUSTRALIA) Catherine", Lang: ""},
			},
			want: "English (AUSTRALIA) Catherine", ok: true,
		},
		{
			name: "first en- voice without Australian entry",
			voices: []Voice{
				{Name: "Anna", Lang: "de-DE"},
				{Name: "Daniel", Lang: "en-GB"},
				{Name: "Alex", Lang: "en-US"},
			},
			want: "Daniel", ok: true,
		},
		{
			name: "bare en is not en-",
			voices: []Voice{
				{Name: "English", Lang: "en"},
				{Name: "Moira", Lang: "en-IE"},
			},
			want: "Moira", ok: true,
		},
		{
			name: "no English falls back to first",
			voices: []Voice{
				{Name: "Anna", Lang: "de-DE"},
				{Name: "Thomas", Lang: "fr-FR"},
			},
			want: "Anna", ok: true,
		},
		{name: "empty list", voices: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectVoice(tt.voices)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got.Name != tt.want {
				t.Errorf("selected %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestFindVoice(t *testing.T) {
	voices := []Voice{{Name: "Karen", Lang: "en-AU"}, {Name: "Daniel", Lang: "en-GB"}}

	if v, ok := FindVoice(voices, "daniel"); !ok || v.Name != "Daniel" {
		t.Errorf("FindVoice(daniel) = %+v, %v", v, ok)
	}
	if _, ok := FindVoice(voices, "Moira"); ok {
		t.Error("FindVoice(Moira) should miss")
	}
	if _, ok := FindVoice(voices, ""); ok {
		t.Error("empty name should never match")
	}
}

func TestVoiceID(t *testing.T) {
	if got := (Voice{Name: "English (Great Britain)", ID: "en-gb"}).id(); got != "en-gb" {
		t.Errorf("id() = %q, want en-gb", got)
	}
	if got := (Voice{Name: "Karen"}).id(); got != "Karen" {
		t.Errorf("id() = %q, want Karen", got)
	}
}
