package course

import (
	"errors"
	"fmt"
)

// ErrUnknownTopic is returned when a topic number or title does not exist.
var ErrUnknownTopic = errors.New("unknown topic")

// Sequence is the ordered, immutable list of cards built once from a course.
type Sequence struct {
	course    *Course
	cards     []Card
	training  []int
	bearing   []int
	byTitle   map[string]int
	byTopic   map[string]int
	finalTest int
}

// BuildSequence lays out intro, cover, one card per topic, the final test,
// and the completion card.
func BuildSequence(c *Course) *Sequence {
	s := &Sequence{
		course:    c,
		cards:     make([]Card, 0, len(c.Topics)+4),
		byTitle:   make(map[string]int, len(c.Topics)+4),
		byTopic:   make(map[string]int, len(c.Topics)),
		finalTest: -1,
	}

	s.add(Card{Title: c.Intro.Title, Kind: KindIntro, TopicIndex: -1})
	s.add(Card{Title: c.Cover.Title, Kind: KindCover, TopicIndex: -1})
	for i, t := range c.Topics {
		s.add(Card{Title: t.Title, Kind: KindTraining, TopicIndex: i})
	}
	s.add(Card{Title: c.FinalTest.Title, Kind: KindFinalTest, TopicIndex: -1})
	s.add(Card{Title: c.Complete.Title, Kind: KindComplete, TopicIndex: -1})

	return s
}

func (s *Sequence) add(card Card) {
	idx := len(s.cards)
	s.cards = append(s.cards, card)
	if _, dup := s.byTitle[card.Title]; !dup {
		s.byTitle[card.Title] = idx
	}
	if card.IsTraining() {
		s.training = append(s.training, idx)
		if _, dup := s.byTopic[card.Title]; !dup {
			s.byTopic[card.Title] = idx
		}
	}
	if card.IsProgressBearing() {
		s.bearing = append(s.bearing, idx)
	}
	if card.Kind == KindFinalTest {
		s.finalTest = idx
	}
}

// Course returns the content the sequence was built from.
func (s *Sequence) Course() *Course {
	return s.course
}

// Len returns the total number of cards.
func (s *Sequence) Len() int {
	return len(s.cards)
}

// InRange reports whether i is a valid card index.
func (s *Sequence) InRange(i int) bool {
	return i >= 0 && i < len(s.cards)
}

// Card returns the card at index i. It panics if i is out of range.
func (s *Sequence) Card(i int) Card {
	return s.cards[i]
}

// Cards returns a copy of all cards.
func (s *Sequence) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// TrainingIndices returns the card indices of training cards in order.
func (s *Sequence) TrainingIndices() []int {
	out := make([]int, len(s.training))
	copy(out, s.training)
	return out
}

// ProgressBearing returns the card indices that count toward progress
// (training cards and the final test).
func (s *Sequence) ProgressBearing() []int {
	out := make([]int, len(s.bearing))
	copy(out, s.bearing)
	return out
}

// IsTrainingIndex reports whether the card at i is a training card.
func (s *Sequence) IsTrainingIndex(i int) bool {
	return s.InRange(i) && s.cards[i].IsTraining()
}

// TopicCount returns the number of training topics.
func (s *Sequence) TopicCount() int {
	return len(s.training)
}

// FinalTestIndex returns the index of the final-test card, or -1.
func (s *Sequence) FinalTestIndex() int {
	return s.finalTest
}

// IndexOfTopic returns the card index of the 1-based topic number.
func (s *Sequence) IndexOfTopic(topicNumber int) (int, error) {
	if topicNumber < 1 || topicNumber > len(s.training) {
		return 0, fmt.Errorf("topic %d: %w", topicNumber, ErrUnknownTopic)
	}
	return s.training[topicNumber-1], nil
}

// IndexOfTitle returns the card index of the first card with the given title.
func (s *Sequence) IndexOfTitle(title string) (int, bool) {
	i, ok := s.byTitle[title]
	return i, ok
}

// TrainingIndexOfTitle returns the card index of the training card for
// the topic title, ignoring non-training cards that share the title.
func (s *Sequence) TrainingIndexOfTitle(title string) (int, bool) {
	i, ok := s.byTopic[title]
	return i, ok
}

// TopicAt returns the topic shown by the card at index i.
func (s *Sequence) TopicAt(i int) (Topic, bool) {
	if !s.IsTrainingIndex(i) {
		return Topic{}, false
	}
	return s.course.Topics[s.cards[i].TopicIndex], true
}
