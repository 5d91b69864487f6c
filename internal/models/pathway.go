package models

import "sort"

// Known pathway tags.
const (
	PathwayCareer    = "career"
	PathwayEducation = "education"
	PathwayTESDA     = "tesda"
)

// Card field fallbacks.
const (
	FallbackSeeDetails = "See details"
	FallbackNone       = "—"
)

// FieldRule describes one metadata row on a recommendation card.
// The first key whose value is truthy supplies the row value.
type FieldRule struct {
	Label    string   `yaml:"label" json:"label"`
	Keys     []string `yaml:"keys" json:"keys"`
	Fallback string   `yaml:"fallback" json:"fallback"`
}

// Question is one questionnaire input on a pathway page.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Label   string   `yaml:"label" json:"label"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// PathwayDef declares how a pathway is presented.
type PathwayDef struct {
	Name      string      `yaml:"name" json:"name"`
	Title     string      `yaml:"title" json:"title"`
	Questions []Question  `yaml:"questions" json:"questions"`
	Fields    []FieldRule `yaml:"fields" json:"fields"`
}

// Catalog maps pathway tags to their presentation rules.
type Catalog map[string]PathwayDef

// Fields returns the card rows for a pathway, or nil for unknown pathways.
func (c Catalog) Fields(pathway string) []FieldRule {
	def, ok := c[pathway]
	if !ok {
		return nil
	}
	return def.Fields
}

// Lookup returns the definition for a pathway.
func (c Catalog) Lookup(pathway string) (PathwayDef, bool) {
	def, ok := c[pathway]
	return def, ok
}

// Names returns the pathway tags in a stable order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog returns the built-in pathway definitions.
func DefaultCatalog() Catalog {
	return Catalog{
		PathwayCareer: {
			Name:  PathwayCareer,
			Title: "Career",
			Questions: []Question{
				{ID: "primary_skills", Label: "Primary skills", Options: []string{"communication", "problem-solving", "technical", "hands-on", "service", "creative"}},
				{ID: "industry", Label: "Preferred industry", Options: []string{"tech", "business", "health", "education", "creative", "service", "trade"}},
				{ID: "salary", Label: "Salary expectation"},
				{ID: "work_environment", Label: "Work environment"},
			},
			Fields: []FieldRule{
				{Label: "Growth", Keys: []string{"growth"}, Fallback: FallbackSeeDetails},
				{Label: "Related", Keys: []string{"related_titles", "related"}, Fallback: FallbackNone},
			},
		},
		PathwayEducation: {
			Name:  PathwayEducation,
			Title: "Education",
			Questions: []Question{
				{ID: "program_type", Label: "Program type", Options: []string{"shs", "college", "als"}},
				{ID: "modality", Label: "Preferred modality"},
				{ID: "budget", Label: "Budget"},
				{ID: "learning_style", Label: "Learning style"},
				{ID: "motivation", Label: "Motivation"},
			},
			Fields: []FieldRule{
				{Label: "Modality", Keys: []string{"modality"}, Fallback: FallbackNone},
				{Label: "Related", Keys: []string{"related_programs", "related"}, Fallback: FallbackNone},
			},
		},
		PathwayTESDA: {
			Name:  PathwayTESDA,
			Title: "TESDA",
			Questions: []Question{
				{ID: "budget", Label: "Budget"},
				{ID: "time_available", Label: "Time available"},
				{ID: "location", Label: "Location"},
				{ID: "experience", Label: "Experience"},
				{ID: "course_interest", Label: "Course interest"},
			},
			Fields: []FieldRule{
				{Label: "Duration/Notes", Keys: []string{"time_available"}, Fallback: FallbackSeeDetails},
				{Label: "Related", Keys: []string{"related_courses", "related"}, Fallback: FallbackNone},
			},
		},
	}
}
