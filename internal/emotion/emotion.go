package emotion

import "fmt"

// Emotion is one of the seven detected categories. The zero value is None.
type Emotion uint8

const (
	None Emotion = iota
	Angry
	Disgust
	Fear
	Happy
	Sad
	Surprise
	Neutral
)

// Count is the number of categories on the chart.
const Count = 7

// All lists the categories in chart order.
var All = [Count]Emotion{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

var _ fmt.Stringer = Emotion(0)

var names = [...]string{
	None:     "None",
	Angry:    "Angry",
	Disgust:  "Disgust",
	Fear:     "Fear",
	Happy:    "Happy",
	Sad:      "Sad",
	Surprise: "Surprise",
	Neutral:  "Neutral",
}

var emojis = [...]string{
	None:     "",
	Angry:    "😠",
	Disgust:  "🤢",
	Fear:     "😱",
	Happy:    "😄",
	Sad:      "😢",
	Surprise: "😲",
	Neutral:  "😐",
}

// box background per emotion; anything unknown falls back to Happy's.
var colors = [...]string{
	Angry:    "#e76f51",
	Disgust:  "#2a9d8f",
	Fear:     "#264653",
	Happy:    "#a4c3b2",
	Sad:      "#9a8c98",
	Surprise: "#f4a261",
	Neutral:  "#cce3de",
}

func (e Emotion) String() string {
	if int(e) < len(names) {
		return names[e]
	}
	return fmt.Sprintf("Emotion(%d)", uint8(e))
}

func (e Emotion) Emoji() string {
	if int(e) < len(emojis) {
		return emojis[e]
	}
	return ""
}

// Color returns the prediction box background as a hex string.
func (e Emotion) Color() string {
	if e.Valid() {
		return colors[e]
	}
	return colors[Happy]
}

// Index returns the chart position of e, or -1 for None and unknown values.
func (e Emotion) Index() int {
	if !e.Valid() {
		return -1
	}
	return int(e) - 1
}

func (e Emotion) Valid() bool {
	return e >= Angry && e <= Neutral
}

// Parse maps a backend key to an emotion. Keys are matched exactly.
func Parse(name string) (Emotion, bool) {
	for _, e := range All {
		if names[e] == name {
			return e, true
		}
	}
	return None, false
}

// Phrase is what gets spoken for e.
func Phrase(e Emotion) string {
	return "You look " + e.String()
}

// Caption is the prediction text shown next to the chart.
func Caption(e Emotion) string {
	return Phrase(e) + " " + e.Emoji()
}
