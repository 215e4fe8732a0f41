package yamlfile

// Entry is one bookmark in a flat YAML file. Timestamps are strings so the
// loader can accept RFC3339, zoneless, and date-only forms; zoneless values
// are treated as UTC.
type Entry struct {
	URL         string   `yaml:"url"`
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Added       string   `yaml:"added,omitempty"`
	LastVisited string   `yaml:"last_visited,omitempty"`
	VisitCount  int      `yaml:"visit_count,omitempty"`
	Starred     bool     `yaml:"starred,omitempty"`
}

// File is the root of an import/export document.
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
