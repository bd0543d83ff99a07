package course

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
title: Tiny Course
topics:
  - title: Alpha
    statements: [right, wrong]
    narration:
      source: alpha.mp3
      duration: 5s
  - title: Beta
    statements: [right]
final_test:
  questions:
    - id: q1
      prompt: pick
      options: [a, b]
      correct: 0
`

func TestDefaultCourseIsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, c.Title)
	assert.Equal(t, "safe-data-handling", c.ID)
	assert.Len(t, c.Topics, 4)
	assert.Len(t, c.FinalTest.Questions, 10)
}

func TestParse_DefaultsAndNarration(t *testing.T) {
	c, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "tiny-course", c.ID)
	assert.Equal(t, "Welcome", c.Intro.Title)
	assert.Equal(t, "Final Assessment", c.FinalTest.Title)
	require.NotNil(t, c.Topics[0].Narration)
	assert.Equal(t, 5*time.Second, c.Topics[0].Narration.Duration)
	assert.Nil(t, c.Topics[1].Narration)
}

func TestParse_ValidationProblems(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate topic title",
			yaml: `
title: X
topics:
  - {title: A, statements: [s]}
  - {title: A, statements: [s]}
final_test: {questions: [{id: q, options: [a, b], correct: 0}]}`,
			want: "duplicate title",
		},
		{
			name: "topic title reuses intro title",
			yaml: `
title: X
intro: {title: A}
topics: [{title: A, statements: [s]}]
final_test: {questions: [{id: q, options: [a, b], correct: 0}]}`,
			want: "also the intro card title",
		},
		{
			name: "topic title reuses final test title",
			yaml: `
title: X
topics: [{title: Final Assessment, statements: [s]}]
final_test: {questions: [{id: q, options: [a, b], correct: 0}]}`,
			want: "also the final test card title",
		},
		{
			name: "no statements",
			yaml: `
title: X
topics: [{title: A}]
final_test: {questions: [{id: q, options: [a, b], correct: 0}]}`,
			want: "no challenge statements",
		},
		{
			name: "no questions",
			yaml: `
title: X
topics: [{title: A, statements: [s]}]`,
			want: "final test has no questions",
		},
		{
			name: "correct out of range",
			yaml: `
title: X
topics: [{title: A, statements: [s]}]
final_test: {questions: [{id: q, options: [a, b], correct: 2}]}`,
			want: "out of range",
		},
		{
			name: "bad narration duration",
			yaml: `
title: X
topics: [{title: A, statements: [s], narration: {source: a.mp3, duration: soon}}]
final_test: {questions: [{id: q, options: [a, b], correct: 0}]}`,
			want: "invalid narration duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %T", err)
			assert.Contains(t, verr.Error(), tt.want)
		})
	}
}

func TestLoad_FileAndEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Tiny Course", c.Title)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "Safe Data Handling", c.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuildSequence(t *testing.T) {
	c, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)
	s := BuildSequence(c)

	kinds := make([]string, 0, s.Len())
	for _, card := range s.Cards() {
		kinds = append(kinds, string(card.Kind))
	}
	assert.Equal(t, "intro,cover,training,training,final-test,complete", strings.Join(kinds, ","))
	assert.Equal(t, []int{2, 3}, s.TrainingIndices())
	assert.Equal(t, []int{2, 3, 4}, s.ProgressBearing())
	assert.Equal(t, 4, s.FinalTestIndex())
	assert.Equal(t, 2, s.TopicCount())

	idx, err := s.IndexOfTopic(2)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = s.IndexOfTopic(3)
	assert.ErrorIs(t, err, ErrUnknownTopic)
	_, err = s.IndexOfTopic(0)
	assert.ErrorIs(t, err, ErrUnknownTopic)

	topic, ok := s.TopicAt(3)
	require.True(t, ok)
	assert.Equal(t, "Beta", topic.Title)
	_, ok = s.TopicAt(0)
	assert.False(t, ok)
}

func TestNarrationIndex(t *testing.T) {
	c, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)
	idx := BuildNarrationIndex(c)

	n, ok := idx.Lookup("Alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha.mp3", n.Source)
	assert.False(t, idx.Has("Beta"))
}

func TestTrainingIndexOfTitleSkipsOtherCards(t *testing.T) {
	c := &Course{
		Title:     "Shared",
		Intro:     Screen{Title: "Alpha"},
		Cover:     Screen{Title: "Modules"},
		Topics:    []Topic{{Title: "Alpha", Statements: []string{"s"}}},
		FinalTest: FinalTest{Title: "Final"},
		Complete:  Screen{Title: "Done"},
	}
	s := BuildSequence(c)

	idx, ok := s.IndexOfTitle("Alpha")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = s.TrainingIndexOfTitle("Alpha")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = s.TrainingIndexOfTitle("Final")
	assert.False(t, ok)
}
