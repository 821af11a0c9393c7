package speech

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// sapi drives System.Speech through PowerShell.
type sapi struct {
	bin string
}

func (b *sapi) Name() string { return "sapi" }

func (b *sapi) Voices(ctx context.Context) ([]Voice, error) {
	out, err := runCommand(ctx, b.bin, "-NoProfile", "-NonInteractive", "-Command", sapiVoicesScript())
	if err != nil {
		return nil, err
	}
	return parseSAPIVoices(string(out)), nil
}

func (b *sapi) Render(ctx context.Context, u Utterance) ([]byte, error) {
	path := tempWAVPath()
	defer os.Remove(path)
	if _, err := runCommand(ctx, b.bin, "-NoProfile", "-NonInteractive", "-Command", sapiRenderScript(u, path)); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sapi output: %w", err)
	}
	return data, nil
}

// VoiceDirs is empty: SAPI voices live in the registry.
func (b *sapi) VoiceDirs() []string { return nil }

const sapiPrelude = `Add-Type -AssemblyName System.Speech; ` +
	`$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; `

func sapiVoicesScript() string {
	return sapiPrelude +
		`$s.GetInstalledVoices() | Where-Object { $_.Enabled } | ForEach-Object { ` +
		`$_.VoiceInfo.Name + '|' + $_.VoiceInfo.Culture.Name }; ` +
		`$s.Dispose()`
}

// sapiRenderScript ignores Pitch: SpeechSynthesizer has no pitch property.
func sapiRenderScript(u Utterance, out string) string {
	var b strings.Builder
	b.WriteString(sapiPrelude)
	if u.Voice != nil {
		fmt.Fprintf(&b, "$s.SelectVoice(%s); ", psQuote(u.Voice.id()))
	}
	fmt.Fprintf(&b, "$s.Rate = %d; ", sapiRate(u.Rate))
	fmt.Fprintf(&b, "$s.SetOutputToWaveFile(%s); ", psQuote(out))
	fmt.Fprintf(&b, "$s.Speak(%s); ", psQuote(u.Text))
	b.WriteString("$s.Dispose()")
	return b.String()
}

// parseSAPIVoices reads "Name|Culture" lines.
func parseSAPIVoices(out string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		name, lang, ok := strings.Cut(strings.TrimSpace(sc.Text()), "|")
		if !ok || name == "" {
			continue
		}
		voices = append(voices, Voice{Name: name, Lang: lang})
	}
	return voices
}

// psQuote wraps s in a PowerShell single-quoted string, doubling any
// embedded single quotes.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
