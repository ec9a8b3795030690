package config

// Config tunes how the pipelines address the Notion database and classify
// image URLs. Every field has a built-in default; a YAML file only needs to
// override what differs.

type Config struct {
	Properties PropertyNames  `yaml:"properties"`
	Categories CategoryConfig `yaml:"categories"`
	Feed       FeedColumns    `yaml:"feed"`
}

// PropertyNames maps pipeline roles onto property names of the Notion
// database.
type PropertyNames struct {
	Name     string `yaml:"name"`
	Status   string `yaml:"status"`
	Summary  string `yaml:"summary"`
	Detail   string `yaml:"detail"`
	Images   string `yaml:"images"`
	Category string `yaml:"category"`
	Quantity string `yaml:"quantity"`
	Price    string `yaml:"price"`
}

// CategoryConfig holds the keyword sets used by the image-tag pipeline.
// Matching is case-insensitive substring matching on the URL; a URL matching
// neither set falls back to the catch-all label.
type CategoryConfig struct {
	Safety    CategorySet `yaml:"safety"`
	Warehouse CategorySet `yaml:"warehouse"`
	Fallback  string      `yaml:"fallback"`
}

type CategorySet struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// FeedColumns lists the accepted header names for each order feed field, in
// priority order. The feed mixes English and Korean headers depending on the
// export tool.
type FeedColumns struct {
	Name     []string `yaml:"name"`
	Quantity []string `yaml:"quantity"`
	Price    []string `yaml:"price"`
}
