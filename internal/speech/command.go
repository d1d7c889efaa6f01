package speech

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// words per minute at rate 1.0 for both espeak and say
const baseWPM = 175

type runFunc func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// CommandVoice speaks through a local synthesizer binary such as espeak-ng,
// espeak or macOS say.
type CommandVoice struct {
	name string
	args []string
	run  runFunc
}

var _ Voice = (*CommandVoice)(nil)

// NewCommandVoice parses command as a binary followed by fixed arguments.
func NewCommandVoice(command string) (*CommandVoice, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("speech: empty command")
	}
	return &CommandVoice{name: fields[0], args: fields[1:], run: runCommand}, nil
}

func (v *CommandVoice) Say(ctx context.Context, u Utterance) error {
	return v.run(ctx, v.name, v.argv(u)...)
}

func (v *CommandVoice) argv(u Utterance) []string {
	wpm := strconv.Itoa(int(math.Round(baseWPM * u.Rate)))

	args := append([]string(nil), v.args...)
	switch filepath.Base(v.name) {
	case "say":
		args = append(args, "-r", wpm)
	default:
		if u.Lang != "" {
			args = append(args, "-v", strings.ToLower(u.Lang))
		}
		args = append(args, "-s", wpm)
	}
	return append(args, u.Text)
}
