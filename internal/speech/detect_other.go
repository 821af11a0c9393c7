//go:build !darwin && !windows

package speech

func candidates() []string {
	return []string{"espeak-ng", "espeak"}
}
