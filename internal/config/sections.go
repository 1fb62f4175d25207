package config

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ludo-technologies/pysmell/internal/detector"
	"github.com/ludo-technologies/pysmell/internal/smell"
)

// Entry is one key of a detector section
type Entry struct {
	Key   string
	Value string

	// Quoted marks string values
	Quoted bool
}

// TOML renders the value as a TOML literal
func (e Entry) TOML() string {
	if e.Quoted {
		return strconv.Quote(e.Value)
	}
	return e.Value
}

// Section groups the keys of one detector
type Section struct {
	Name    string
	Entries []Entry
}

// Sections lays the thresholds out as configuration sections, in detector
// registration order. A key shared by several metrics is listed once.
func Sections(thresholds map[string][]smell.Threshold) []Section {
	var sections []Section
	for _, name := range detector.Names() {
		ths, ok := thresholds[name]
		if !ok {
			continue
		}

		section := Section{Name: name}
		seen := make(map[string]bool)
		add := func(key, value string, quoted bool) {
			if seen[key] {
				return
			}
			seen[key] = true
			section.Entries = append(section.Entries, Entry{Key: key, Value: value, Quoted: quoted})
		}

		for _, t := range ths {
			add(t.Keys.UsePercentage, strconv.FormatBool(t.UsePercentage), false)
			add(t.Keys.Absolute, t.Absolute.String(), false)
			add(t.Keys.Percentage, strconv.FormatFloat(t.Percentage, 'f', 2, 64), false)
			add(BoundKey(t.Metric), t.Bound.String(), true)
		}
		sections = append(sections, section)
	}
	return sections
}

// WriteThresholds prints the effective detector configuration
func WriteThresholds(w io.Writer, cfg *Config) error {
	source := cfg.Path
	if source == "" {
		source = "defaults"
	}
	if _, err := fmt.Fprintf(w, "------\ncurrent configuration (%s):\n", source); err != nil {
		return err
	}

	for _, section := range Sections(cfg.Thresholds) {
		if _, err := fmt.Fprintf(w, "\n%s:\n", section.Name); err != nil {
			return err
		}
		for _, e := range section.Entries {
			if _, err := fmt.Fprintf(w, "%s: %s\n", e.Key, e.Value); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "------")
	return err
}
