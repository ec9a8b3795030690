package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in pipeline configuration. Property names match
// the Notion database this service was built around; the keyword sets cover
// the two product families the shop carries.
func Default() *Config {
	return &Config{
		Properties: PropertyNames{
			Name:     "Name",
			Status:   "Status",
			Summary:  "Summary",
			Detail:   "DetailPage",
			Images:   "Images",
			Category: "Category",
			Quantity: "Quantity",
			Price:    "Price",
		},
		Categories: CategoryConfig{
			Safety: CategorySet{
				Label:    "safety-equipment",
				Keywords: []string{"forklift", "helmet", "safety", "glove", "vest", "boot"},
			},
			Warehouse: CategorySet{
				Label:    "warehouse-equipment",
				Keywords: []string{"rack", "pallet", "shelf", "crane", "cart", "ladder"},
			},
			Fallback: "uncategorized",
		},
		Feed: FeedColumns{
			Name:     []string{"name", "상품명"},
			Quantity: []string{"qty", "수량"},
			Price:    []string{"price", "가격"},
		},
	}
}

// Load reads the optional tuning file at path and merges it over the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipelines config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse pipelines config: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid pipelines config %s: %w", path, err)
	}

	return config, nil
}

func validate(config *Config) error {
	if config.Properties.Status == "" {
		return fmt.Errorf("properties.status must not be empty")
	}
	if config.Categories.Fallback == "" {
		return fmt.Errorf("categories.fallback must not be empty")
	}
	if config.Categories.Safety.Label == "" || config.Categories.Warehouse.Label == "" {
		return fmt.Errorf("category labels must not be empty")
	}
	if len(config.Feed.Name) == 0 {
		return fmt.Errorf("feed.name must list at least one column header")
	}
	return nil
}
