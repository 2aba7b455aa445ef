// Package catalog holds the externally supplied topic pools: per-topic sets
// of parameterizable question templates. The engine only selects and
// parameterizes entries; it attaches no meaning to any subject's content.
package catalog

import (
	"fmt"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// Param declares one integer parameter drawn by the generator. Placeholders
// of the form {name} in prompt, choices, answers and explanation are replaced
// with the drawn value.
type Param struct {
	Name string `yaml:"name"`
	Min  int    `yaml:"min"`
	Max  int    `yaml:"max"`
}

// ChoiceTemplate is one option of a choice or reorder entry. For
// drag_reorder entries the pool lists choices in the correct order; the
// generator shuffles the presented order.
type ChoiceTemplate struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Correct bool   `yaml:"correct,omitempty"`
}

// MatrixTemplate declares a matrix_input answer grid. Each cell is an
// arithmetic expression over the entry's params.
type MatrixTemplate struct {
	Rows  int        `yaml:"rows"`
	Cols  int        `yaml:"cols"`
	Cells [][]string `yaml:"cells"`
}

// CodeTemplate declares the comparison rules forwarded to the validator for
// code_input entries. Program execution happens in an external runner.
type CodeTemplate struct {
	StarterCode    string `yaml:"starter_code,omitempty"`
	Stdout         string `yaml:"stdout"`
	ExitCode       int    `yaml:"exit_code,omitempty"`
	TrimWhitespace bool   `yaml:"trim_whitespace,omitempty"`
}

// Entry is one parameterizable question template.
type Entry struct {
	Handler    string     `yaml:"handler,omitempty"`
	Kind       model.Kind `yaml:"kind"`
	Difficulty string     `yaml:"difficulty"`
	Title      string     `yaml:"title,omitempty"`
	Prompt     string     `yaml:"prompt"`
	Params     []Param    `yaml:"params,omitempty"`

	Choices []ChoiceTemplate `yaml:"choices,omitempty"`
	// Answer is an arithmetic expression for numeric entries.
	Answer    string  `yaml:"answer,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
	// Answers lists accepted strings for text/voice entries.
	Answers []string        `yaml:"answers,omitempty"`
	Match   string          `yaml:"match,omitempty"`
	Matrix  *MatrixTemplate `yaml:"matrix,omitempty"`
	Code    *CodeTemplate   `yaml:"code,omitempty"`

	Explanation string `yaml:"explanation,omitempty"`
}

// Topic groups the entries of one teachable unit.
type Topic struct {
	ID      string  `yaml:"id"`
	Section string  `yaml:"section,omitempty"`
	Entries []Entry `yaml:"entries"`
}

// Module groups topics within a subject.
type Module struct {
	ID     string  `yaml:"id"`
	Topics []Topic `yaml:"topics"`
}

// SubjectPool is the root document of one pool file.
type SubjectPool struct {
	Version int      `yaml:"version"`
	Subject string   `yaml:"subject"`
	Modules []Module `yaml:"modules"`
}

// Catalog is the injected, versioned registry of all loaded pools.
type Catalog struct {
	topics map[string]*Topic // keyed by subject|module|topic
}

// New builds a catalog from loaded subject pools.
func New(pools ...SubjectPool) *Catalog {
	c := &Catalog{topics: make(map[string]*Topic)}
	for i := range pools {
		pool := pools[i]
		for j := range pool.Modules {
			mod := pool.Modules[j]
			for k := range mod.Topics {
				topic := mod.Topics[k]
				c.topics[topicKey(pool.Subject, mod.ID, topic.ID)] = &topic
			}
		}
	}
	return c
}

func topicKey(subject, module, topic string) string {
	return subject + "|" + module + "|" + topic
}

// Pool resolves the candidate entries for a generation request. An unknown
// topic or handler is rejected outright; the engine never silently
// substitutes different content.
func (c *Catalog) Pool(subject, module, topic, difficulty string, kind model.Kind, handler string) ([]Entry, error) {
	t, ok := c.topics[topicKey(subject, module, topic)]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", model.ErrUnknownTopic, subject, module, topic)
	}

	var entries []Entry
	for _, e := range t.Entries {
		if difficulty != "" && e.Difficulty != difficulty {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		if handler != "" && e.Handler != handler {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		if handler != "" {
			return nil, fmt.Errorf("%w: %q for topic %s", model.ErrUnknownHandler, handler, topic)
		}
		return nil, fmt.Errorf("%w: no entries for %s/%s/%s difficulty=%s kind=%s",
			model.ErrUnknownTopic, subject, module, topic, difficulty, kind)
	}
	return entries, nil
}

// Section returns the section id a topic belongs to, or empty when unknown.
func (c *Catalog) Section(subject, module, topic string) string {
	if t, ok := c.topics[topicKey(subject, module, topic)]; ok {
		return t.Section
	}
	return ""
}
