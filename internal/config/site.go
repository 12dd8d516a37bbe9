package config

// File is the root of the .linkmap YAML configuration file.
//
// Example:
//
//	sites:
//	  https://kryptonaut.neocities.org/:
//	    max_pages: 200
//	    extractor: dom
//	  https://dawnvoid.neocities.org/:
//	    max_pages: 50
type File struct {
	// Sites maps seed URLs to their overrides.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// SiteConfig holds per-site crawl overrides. Zero values mean "use the
// global setting".
type SiteConfig struct {
	// MaxPages overrides the global page cap for this site.
	MaxPages int `yaml:"max_pages,omitempty"`

	// Extractor overrides the extraction strategy for this site
	// ("pattern" or "dom").
	Extractor ExtractorName `yaml:"extractor,omitempty"`
}
