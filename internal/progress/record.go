// Package progress persists the durable subset of a learner's position:
// the current card index and the set of viewed cards.
package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidRecord is returned when a stored record cannot be decoded.
var ErrInvalidRecord = errors.New("invalid progress record")

// Record is the durable progress blob.
type Record struct {
	CurrentIndex      int   `json:"currentIndex"`
	ViewedCardIndexes []int `json:"viewedCardIndexes"`
}

const recordSchemaURL = "schema://progress-record.json"

// Unknown properties are tolerated so an older binary can read a record
// written by a newer one.
var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"currentIndex": map[string]any{"type": "integer"},
		"viewedCardIndexes": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer"},
		},
	},
	"required": []any{"currentIndex", "viewedCardIndexes"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, recordSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(recordSchemaURL)
	})
	return compiled, compileErr
}

// Encode serializes r with its viewed indexes sorted and de-duplicated.
func Encode(r Record) ([]byte, error) {
	r.ViewedCardIndexes = normalize(r.ViewedCardIndexes)
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal progress: %w", err)
	}
	return b, nil
}

// Decode parses and shape-checks a stored record. It does not check bounds;
// see Sanitize.
func Decode(raw []byte) (Record, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	sch, err := schema()
	if err != nil {
		return Record{}, fmt.Errorf("compile progress schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return r, nil
}

// Sanitize drops values that do not fit a sequence of cardCount cards. An
// out-of-range current index resets to 0; viewed indexes are filtered
// individually.
func Sanitize(r Record, cardCount int) Record {
	out := Record{CurrentIndex: r.CurrentIndex}
	if out.CurrentIndex < 0 || out.CurrentIndex >= cardCount {
		out.CurrentIndex = 0
	}
	for _, i := range r.ViewedCardIndexes {
		if i >= 0 && i < cardCount {
			out.ViewedCardIndexes = append(out.ViewedCardIndexes, i)
		}
	}
	out.ViewedCardIndexes = normalize(out.ViewedCardIndexes)
	return out
}

func normalize(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, i := range in {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
