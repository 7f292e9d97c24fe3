// Package models defines the workshop document model and the wire shapes
// exchanged with the remote pedagogical scoring service. JSON tags keep the
// service's original Spanish field names for wire compatibility; YAML tags
// are used by the local session store.
package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Population identifies the target audience of a workshop.
type Population string

const (
	PopulationYoung Population = "joven"
	PopulationAdult Population = "adulta"
)

// SectionKind identifies the role of a section within a workshop.
type SectionKind string

const (
	KindIntroduction SectionKind = "Introducción"
	KindObjective    SectionKind = "Objetivo"
	KindActivity     SectionKind = "Actividad"
)

// ActivityDetail holds the structured description of an activity section.
type ActivityDetail struct {
	Title     string   `json:"Titulo" yaml:"title"`
	Modality  string   `json:"Modalidad" yaml:"modality"`
	Duration  string   `json:"Duracion" yaml:"duration"`
	Materials []string `json:"Materiales" yaml:"materials"`
	Steps     []string `json:"Pasos" yaml:"steps"`
}

// SectionContent is the union carried by a section: plain text for
// introductions and objectives, a structured activity otherwise. On the wire
// an activity is a single-element array, which the scoring service expects.
type SectionContent struct {
	Text     string
	Activity *ActivityDetail
}

// MarshalJSON emits either a bare string or a one-element ActivityDetail array.
func (c SectionContent) MarshalJSON() ([]byte, error) {
	if c.Activity != nil {
		return json.Marshal([]ActivityDetail{*c.Activity})
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a bare string or an ActivityDetail array.
func (c *SectionContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		c.Activity = nil
		return nil
	}

	var details []ActivityDetail
	if err := json.Unmarshal(data, &details); err != nil {
		return fmt.Errorf("section content is neither text nor an activity list: %w", err)
	}
	c.Text = ""
	if len(details) > 0 {
		detail := details[0]
		c.Activity = &detail
	}
	return nil
}

// sectionContentYAML mirrors SectionContent for the session store, where the
// one-element-array artifact does not need to be preserved.
type sectionContentYAML struct {
	Text     string          `yaml:"text,omitempty"`
	Activity *ActivityDetail `yaml:"activity,omitempty"`
}

func (c SectionContent) MarshalYAML() (interface{}, error) {
	return sectionContentYAML{Text: c.Text, Activity: c.Activity}, nil
}

func (c *SectionContent) UnmarshalYAML(value *yaml.Node) error {
	var raw sectionContentYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.Text = raw.Text
	c.Activity = raw.Activity
	return nil
}

// Section is one named unit of workshop content. Label is the display and
// lookup key; it must be unique within a workshop.
type Section struct {
	Kind    SectionKind    `json:"tipo" yaml:"kind"`
	Label   string         `json:"Apartado" yaml:"label"`
	Content SectionContent `json:"Contenido" yaml:"content"`
}

// Workshop is the full proposal being evaluated: metadata plus ordered
// sections. ActivityCounter increases monotonically so activity labels stay
// unique even after deletions.
type Workshop struct {
	Title           string     `json:"titulo" yaml:"title"`
	Population      Population `json:"poblacion" yaml:"population"`
	AgeRange        string     `json:"rangoEdad" yaml:"age_range"`
	Sections        []Section  `json:"apartados" yaml:"sections"`
	ActivityCounter int        `json:"contadorActividades,omitempty" yaml:"activity_counter,omitempty"`
}

// FindSection returns the section with the given label, or nil.
func (w *Workshop) FindSection(label string) *Section {
	for i := range w.Sections {
		if w.Sections[i].Label == label {
			return &w.Sections[i]
		}
	}
	return nil
}

// HasKind reports whether the workshop contains a section of the given kind.
func (w *Workshop) HasKind(kind SectionKind) bool {
	for _, s := range w.Sections {
		if s.Kind == kind {
			return true
		}
	}
	return false
}
