package course

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_course.yaml
var defaultCourseYAML []byte

// courseFile is the on-disk YAML shape. It is kept separate from Course so
// the domain types carry parsed values (durations, defaults) only.
type courseFile struct {
	ID       string      `yaml:"id"`
	Title    string      `yaml:"title"`
	Intro    screenFile  `yaml:"intro"`
	Cover    screenFile  `yaml:"cover"`
	Topics   []topicFile `yaml:"topics"`
	Final    finalFile   `yaml:"final_test"`
	Complete screenFile  `yaml:"complete"`
}

type screenFile struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type topicFile struct {
	Title      string         `yaml:"title"`
	Summary    string         `yaml:"summary"`
	Body       string         `yaml:"body"`
	Prompt     string         `yaml:"prompt"`
	Statements []string       `yaml:"statements"`
	Narration  *narrationFile `yaml:"narration"`
}

type narrationFile struct {
	Source   string `yaml:"source"`
	Duration string `yaml:"duration"`
}

type finalFile struct {
	Title     string         `yaml:"title"`
	Intro     string         `yaml:"intro"`
	Questions []questionFile `yaml:"questions"`
}

type questionFile struct {
	ID      string   `yaml:"id"`
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Correct int      `yaml:"correct"`
}

// Default returns the course embedded in the binary.
func Default() (*Course, error) {
	c, err := Parse(defaultCourseYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded course: %w", err)
	}
	return c, nil
}

// Load reads and validates a course YAML file. An empty path loads the
// embedded course.
func Load(path string) (*Course, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("course %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes course YAML and validates the result.
func Parse(data []byte) (*Course, error) {
	var f courseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	c := &Course{
		ID:       strings.TrimSpace(f.ID),
		Title:    strings.TrimSpace(f.Title),
		Intro:    Screen{Title: orDefault(f.Intro.Title, "Welcome"), Body: f.Intro.Body},
		Cover:    Screen{Title: orDefault(f.Cover.Title, "Modules"), Body: f.Cover.Body},
		Complete: Screen{Title: orDefault(f.Complete.Title, "Complete"), Body: f.Complete.Body},
		FinalTest: FinalTest{
			Title: orDefault(f.Final.Title, "Final Assessment"),
			Intro: f.Final.Intro,
		},
	}
	if c.ID == "" {
		c.ID = slug(c.Title)
	}

	var verr ValidationError
	for i, tf := range f.Topics {
		t := Topic{
			Title:      strings.TrimSpace(tf.Title),
			Summary:    tf.Summary,
			Body:       tf.Body,
			Prompt:     tf.Prompt,
			Statements: tf.Statements,
		}
		if tf.Narration != nil && tf.Narration.Source != "" {
			d, err := time.ParseDuration(tf.Narration.Duration)
			if err != nil || d <= 0 {
				verr.add("topic %d (%s): invalid narration duration %q", i+1, t.Title, tf.Narration.Duration)
			}
			t.Narration = &Narration{Source: tf.Narration.Source, Duration: d}
		}
		c.Topics = append(c.Topics, t)
	}
	for _, qf := range f.Final.Questions {
		c.FinalTest.Questions = append(c.FinalTest.Questions, Question{
			ID:           strings.TrimSpace(qf.ID),
			Prompt:       qf.Prompt,
			Options:      qf.Options,
			CorrectIndex: qf.Correct,
		})
	}

	verr.merge(c.Validate())
	if verr.HasProblems() {
		return nil, &verr
	}
	return c, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
