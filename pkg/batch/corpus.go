package batch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Card is one corpus entry: a card name and the trigger clauses printed on it.
type Card struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
}

// SelfNames returns the names that refer to the card itself in its rules
// text: the full name and, for "Name, Epithet" cards, the short name.
func (c Card) SelfNames() []string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil
	}
	names := []string{name}
	if i := strings.Index(name, ","); i > 0 {
		names = append(names, strings.TrimSpace(name[:i]))
	}
	return names
}

// Corpus is a set of cards to parse in one batch run.
type Corpus struct {
	Cards []Card `yaml:"cards"`
}

// Clauses returns the total number of trigger clauses in the corpus.
func (c *Corpus) Clauses() int {
	n := 0
	for _, card := range c.Cards {
		n += len(card.Triggers)
	}
	return n
}

// LoadCorpus reads a YAML corpus file.
//
// Example file:
//
//	cards:
//	  - name: Wall of Omens
//	    triggers:
//	      - "~ enters"
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %q: %w", path, err)
	}

	corpus, err := ParseCorpus(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus %q: %w", path, err)
	}
	return corpus, nil
}

// ParseCorpus decodes and checks a YAML corpus.
func ParseCorpus(data []byte) (*Corpus, error) {
	var corpus Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return nil, err
	}

	for i, card := range corpus.Cards {
		if strings.TrimSpace(card.Name) == "" {
			return nil, fmt.Errorf("card %d: name is required", i)
		}
	}
	return &corpus, nil
}
