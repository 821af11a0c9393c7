package speech

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// say drives the macOS say command. It cannot write WAV to stdout, so
// each render goes through a temp file.
type say struct {
	bin string
}

func (b *say) Name() string { return "say" }

func (b *say) Voices(ctx context.Context) ([]Voice, error) {
	out, err := runCommand(ctx, b.bin, "-v", "?")
	if err != nil {
		return nil, err
	}
	return parseSayVoices(string(out)), nil
}

func (b *say) Render(ctx context.Context, u Utterance) ([]byte, error) {
	path := tempWAVPath()
	defer os.Remove(path)
	if _, err := runCommand(ctx, b.bin, sayArgs(u, path)...); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading say output: %w", err)
	}
	return data, nil
}

func (b *say) VoiceDirs() []string {
	dirs := []string{"/System/Library/Speech/Voices", "/Library/Speech/Voices"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Library", "Speech", "Voices"))
	}
	return dirs
}

// sayArgs ignores Pitch: say has no pitch flag.
func sayArgs(u Utterance, out string) []string {
	args := []string{
		"-r", strconv.Itoa(wordsPerMinute(u.Rate)),
		"-o", out,
		"--data-format=LEI16@22050",
	}
	if u.Voice != nil {
		args = append(args, "-v", u.Voice.id())
	}
	return append(args, u.Text)
}

// parseSayVoices reads the list printed by "say -v ?":
//
//	Karen               en_AU    # Hello! My name is Karen.
//	Eddy (English (UK)) en_GB    # Hello! My name is Eddy.
func parseSayVoices(out string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		left, _, _ := strings.Cut(sc.Text(), "#")
		left = strings.TrimSpace(left)
		fields := strings.Fields(left)
		if len(fields) < 2 {
			continue
		}
		lang := fields[len(fields)-1]
		name := strings.TrimSpace(strings.TrimSuffix(left, lang))
		voices = append(voices, Voice{Name: name, Lang: lang})
	}
	return voices
}

func tempWAVPath() string {
	return filepath.Join(os.TempDir(), "boolflag-"+uuid.NewString()+".wav")
}
