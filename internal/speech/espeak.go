package speech

import (
	"bufio"
	"context"
	"strconv"
	"strings"
)

// espeak drives espeak-ng or classic espeak, which write WAV to stdout.
type espeak struct {
	name string
	bin  string
}

func (b *espeak) Name() string { return b.name }

func (b *espeak) Voices(ctx context.Context) ([]Voice, error) {
	out, err := runCommand(ctx, b.bin, "--voices")
	if err != nil {
		return nil, err
	}
	return parseEspeakVoices(string(out)), nil
}

func (b *espeak) Render(ctx context.Context, u Utterance) ([]byte, error) {
	return runCommand(ctx, b.bin, espeakArgs(u)...)
}

func (b *espeak) VoiceDirs() []string {
	return []string{
		"/usr/share/espeak-ng-data/voices",
		"/usr/lib/x86_64-linux-gnu/espeak-ng-data/voices",
		"/usr/lib/aarch64-linux-gnu/espeak-ng-data/voices",
		"/usr/local/share/espeak-ng-data/voices",
		"/usr/share/espeak-data/voices",
	}
}

func espeakArgs(u Utterance) []string {
	args := []string{
		"--stdout",
		"-s", strconv.Itoa(wordsPerMinute(u.Rate)),
		"-p", strconv.Itoa(espeakPitch(u.Pitch)),
	}
	if u.Voice != nil {
		args = append(args, "-v", u.Voice.id())
	}
	return append(args, u.Text)
}

// parseEspeakVoices reads the table printed by "espeak-ng --voices":
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-gb           --/M      English_(Great_Britain) gmw/en   (en 2)
func parseEspeakVoices(out string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		voices = append(voices, Voice{
			Name: strings.ReplaceAll(fields[3], "_", " "),
			Lang: fields[1],
			ID:   fields[1],
		})
	}
	return voices
}
