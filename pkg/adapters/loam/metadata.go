package loam

// SlideMetadata is the frontmatter of a slide document.
// The document body is the quote.
type SlideMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Image string `json:"image" mapstructure:"image"`
	Quote string `json:"quote" mapstructure:"quote"`
	// Order is decoded loosely: strict mode yields json.Number, YAML may yield int.
	Order any `json:"order" mapstructure:"order"`
}
