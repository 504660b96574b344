package domain

// LabelAll is the pseudo label that searches the whole index without a
// label filter.
const LabelAll = "all"

// LabelDescriptor is the agent-facing description of a label scope.
type LabelDescriptor struct {
	Title       string   `toml:"title" json:"title" yaml:"title"`
	Description string   `toml:"description" json:"description" yaml:"description"`
	Examples    []string `toml:"examples" json:"examples" yaml:"examples"`
}

// AllLabelDescriptor describes the built-in "all" label.
func AllLabelDescriptor() LabelDescriptor {
	return LabelDescriptor{
		Title:       "All documents",
		Description: "Search across the whole Fess index without label filtering.",
		Examples:    []string{"company policy", "project documentation"},
	}
}

// FessLabel is a label as reported by the Fess labels endpoint.
type FessLabel struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// LabelEntry is one row of the merged label catalog.
type LabelEntry struct {
	Value           string   `json:"value"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Examples        []string `json:"examples"`
	IsConfigured    bool     `json:"isConfigured"`
	IsPresentInFess bool     `json:"isPresentInFess"`
}

// LabelCatalog is the merged view of configured and Fess labels.
type LabelCatalog struct {
	Labels        []LabelEntry `json:"labels"`
	DefaultLabel  string       `json:"defaultLabel"`
	StrictLabels  bool         `json:"strictLabels"`
	FessAvailable bool         `json:"fessAvailable"`
}

// LabelFilter maps a label scope to the Fess filter value. The "all" scope
// has no filter.
func LabelFilter(label string) string {
	if label == LabelAll {
		return ""
	}
	return label
}
