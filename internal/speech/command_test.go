package speech

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandVoiceArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		command  string
		u        Utterance
		wantName string
		wantArgs []string
	}{
		{
			name:     "espeak-ng defaults",
			command:  "espeak-ng",
			u:        Utterance{Text: "You look Happy", Lang: "en-US", Rate: 1},
			wantName: "espeak-ng",
			wantArgs: []string{"-v", "en-us", "-s", "175", "You look Happy"},
		},
		{
			name:     "espeak with extra flags and faster rate",
			command:  "/usr/bin/espeak -a 150",
			u:        Utterance{Text: "You look Sad", Lang: "en-US", Rate: 1.5},
			wantName: "/usr/bin/espeak",
			wantArgs: []string{"-a", "150", "-v", "en-us", "-s", "263", "You look Sad"},
		},
		{
			name:     "macOS say",
			command:  "say",
			u:        Utterance{Text: "You look Neutral", Lang: "en-US", Rate: 1},
			wantName: "say",
			wantArgs: []string{"-r", "175", "You look Neutral"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := NewCommandVoice(tt.command)
			if err != nil {
				t.Fatalf("NewCommandVoice() error = %v", err)
			}

			var gotName string
			var gotArgs []string
			v.run = func(_ context.Context, name string, args ...string) error {
				gotName, gotArgs = name, args
				return nil
			}

			if err := v.Say(t.Context(), tt.u); err != nil {
				t.Fatalf("Say() error = %v", err)
			}
			if gotName != tt.wantName {
				t.Errorf("command = %q, want %q", gotName, tt.wantName)
			}
			if diff := cmp.Diff(tt.wantArgs, gotArgs); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewCommandVoiceEmpty(t *testing.T) {
	t.Parallel()

	if _, err := NewCommandVoice("   "); err == nil {
		t.Error("NewCommandVoice(blank) error = nil")
	}
}
