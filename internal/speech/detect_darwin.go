//go:build darwin

package speech

func candidates() []string {
	return []string{"say", "espeak-ng", "espeak"}
}
