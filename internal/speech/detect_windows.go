//go:build windows

package speech

func candidates() []string {
	return []string{"sapi", "espeak-ng"}
}
