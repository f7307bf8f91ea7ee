package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// baseWordsPerMinute is espeak-ng's default speaking speed.
const baseWordsPerMinute = 175

// ExecSynthesizer speaks through a local espeak-compatible program.
type ExecSynthesizer struct {
	// Program is the executable, "espeak-ng" when empty.
	Program string
}

// Args builds the command line for u.
func (s ExecSynthesizer) Args(u Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	args := []string{"-s", strconv.Itoa(int(baseWordsPerMinute * rate))}
	if voice := strings.ToLower(strings.TrimSpace(u.Locale)); voice != "" {
		args = append(args, "-v", voice)
	}
	return append(args, "--", u.Text)
}

// Speak implements Synthesizer. Cancelling ctx kills the program.
func (s ExecSynthesizer) Speak(ctx context.Context, u Utterance) error {
	program := s.Program
	if program == "" {
		program = "espeak-ng"
	}
	cmd := exec.CommandContext(ctx, program, s.Args(u)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", program, err)
	}
	return nil
}
