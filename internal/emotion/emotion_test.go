package emotion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSeriesFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		snapshot Snapshot
		want     Series
	}{
		{
			name:     "empty snapshot",
			snapshot: Snapshot{},
			want:     Series{},
		},
		{
			name:     "nil snapshot",
			snapshot: nil,
			want:     Series{},
		},
		{
			name:     "partial snapshot keeps chart order",
			snapshot: Snapshot{"Happy": 75.5, "Sad": 10.2},
			want:     Series{0, 0, 0, 75.5, 10.2, 0, 0},
		},
		{
			name: "all categories",
			snapshot: Snapshot{
				"Neutral":  7,
				"Surprise": 6,
				"Sad":      5,
				"Happy":    4,
				"Fear":     3,
				"Disgust":  2,
				"Angry":    1,
			},
			want: Series{1, 2, 3, 4, 5, 6, 7},
		},
		{
			name:     "unknown and differently cased keys ignored",
			snapshot: Snapshot{"Contempt": 50, "happy": 30, "Fear": 20},
			want:     Series{0, 0, 20, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SeriesFrom(tt.snapshot)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SeriesFrom() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDominant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		series Series
		want   Emotion
	}{
		{
			name:   "all zero resolves to first category",
			series: Series{},
			want:   Angry,
		},
		{
			name:   "tie goes to leftmost",
			series: Series{10, 90, 90, 0, 0, 0, 0},
			want:   Disgust,
		},
		{
			name:   "single maximum",
			series: Series{0, 0, 0, 75.5, 10.2, 0, 0},
			want:   Happy,
		},
		{
			name:   "last category",
			series: Series{1, 1, 1, 1, 1, 1, 1.5},
			want:   Neutral,
		},
		{
			name:   "full tie at 100",
			series: Series{100, 100, 100, 100, 100, 100, 100},
			want:   Angry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.series.Dominant(); got != tt.want {
				t.Errorf("Dominant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmotionTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		emotion Emotion
		name    string
		emoji   string
		color   string
		index   int
	}{
		{Angry, "Angry", "😠", "#e76f51", 0},
		{Disgust, "Disgust", "🤢", "#2a9d8f", 1},
		{Fear, "Fear", "😱", "#264653", 2},
		{Happy, "Happy", "😄", "#a4c3b2", 3},
		{Sad, "Sad", "😢", "#9a8c98", 4},
		{Surprise, "Surprise", "😲", "#f4a261", 5},
		{Neutral, "Neutral", "😐", "#cce3de", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.emotion.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.emotion.Emoji(); got != tt.emoji {
				t.Errorf("Emoji() = %q, want %q", got, tt.emoji)
			}
			if got := tt.emotion.Color(); got != tt.color {
				t.Errorf("Color() = %q, want %q", got, tt.color)
			}
			if got := tt.emotion.Index(); got != tt.index {
				t.Errorf("Index() = %d, want %d", got, tt.index)
			}
			parsed, ok := Parse(tt.name)
			if !ok || parsed != tt.emotion {
				t.Errorf("Parse(%q) = %v, %v", tt.name, parsed, ok)
			}
		})
	}
}

func TestColorFallback(t *testing.T) {
	t.Parallel()

	for _, e := range []Emotion{None, Emotion(42)} {
		if got := e.Color(); got != "#a4c3b2" {
			t.Errorf("%v.Color() = %q, want Happy fallback", e, got)
		}
	}
}

func TestCaption(t *testing.T) {
	t.Parallel()

	if got, want := Caption(Happy), "You look Happy 😄"; got != want {
		t.Errorf("Caption() = %q, want %q", got, want)
	}
	if got, want := Phrase(Surprise), "You look Surprise"; got != want {
		t.Errorf("Phrase() = %q, want %q", got, want)
	}
}
