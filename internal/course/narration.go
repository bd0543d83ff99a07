package course

// NarrationIndex maps topic titles to their recordings. It is built once at
// startup and read-only afterwards, so it may be shared without locking.
type NarrationIndex map[string]Narration

// BuildNarrationIndex collects every topic that has a narration source.
func BuildNarrationIndex(c *Course) NarrationIndex {
	idx := make(NarrationIndex)
	for _, t := range c.Topics {
		if t.Narration == nil || t.Narration.Source == "" {
			continue
		}
		idx[t.Title] = *t.Narration
	}
	return idx
}

// Lookup returns the narration mapped to title.
func (n NarrationIndex) Lookup(title string) (Narration, bool) {
	nr, ok := n[title]
	return nr, ok
}

// Has reports whether title has a narration.
func (n NarrationIndex) Has(title string) bool {
	_, ok := n[title]
	return ok
}
