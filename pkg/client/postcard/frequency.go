package postcard

import "ascended/pkg/engagement"

type Tone int

const (
	Neutral Tone = iota
	Positive
	Negative
)

func (t Tone) String() string {
	switch t {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "neutral"
}

// Frequency is the post's net vote score and the tone to colour it with.
func Frequency(c engagement.Counters) (int, Tone) {
	f := c.Frequency()
	switch {
	case f > 0:
		return f, Positive
	case f < 0:
		return f, Negative
	}
	return f, Neutral
}
