package course

import "time"

// Kind identifies what a card in the sequence presents.
type Kind string

const (
	KindIntro     Kind = "intro"
	KindCover     Kind = "cover"
	KindTraining  Kind = "training"
	KindFinalTest Kind = "final-test"
	KindComplete  Kind = "complete"
)

// Course is the static content a learner steps through.
type Course struct {
	ID        string
	Title     string
	Intro     Screen
	Cover     Screen
	Topics    []Topic
	FinalTest FinalTest
	Complete  Screen
}

// Screen is the copy shown on a non-training card.
type Screen struct {
	Title string
	Body  string
}

// Topic is one training module.
type Topic struct {
	Title   string
	Summary string // overview panel
	Body    string // expanded panel

	// Prompt is the challenge question. Statements are its candidate
	// answers; the first one is always the correct statement.
	Prompt     string
	Statements []string

	Narration *Narration
}

// Narration maps a topic to a playable recording.
type Narration struct {
	Source   string
	Duration time.Duration
}

// FinalTest is the closing assessment.
type FinalTest struct {
	Title     string
	Intro     string
	Questions []Question
}

// Question is one final-test question.
type Question struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
}

// Card is one step of the outer sequence. Cards are immutable once built.
type Card struct {
	Title string
	Kind  Kind

	// TopicIndex is the 0-based index into Course.Topics for training
	// cards and -1 for every other kind.
	TopicIndex int
}

// IsTraining reports whether the card presents a topic.
func (c Card) IsTraining() bool {
	return c.Kind == KindTraining
}

// IsProgressBearing reports whether the card counts toward course progress.
func (c Card) IsProgressBearing() bool {
	return c.Kind == KindTraining || c.Kind == KindFinalTest
}
