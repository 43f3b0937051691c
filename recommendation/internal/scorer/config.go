package scorer

// Blend weights and scorer defaults.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Weights defines the soft scoring blend. Mood and Taste split the final
// score; Genre, Decade and Quality split the taste component.
type Weights struct {
	Mood  float64 `yaml:"mood" validate:"gte=0"`
	Taste float64 `yaml:"taste" validate:"gte=0"`
	// Specificity scales the penalty for items scoring higher on unselected
	// moods than on the selected ones.
	Specificity float64 `yaml:"specificity" validate:"gte=0"`
	Genre       float64 `yaml:"genre" validate:"gte=0"`
	Decade      float64 `yaml:"decade" validate:"gte=0"`
	Quality     float64 `yaml:"quality" validate:"gte=0"`
}

// DefaultWeights are used when no weights are configured.
var DefaultWeights = Weights{Mood: 0.6, Taste: 0.4, Specificity: 0.5, Genre: 0.5, Decade: 0.2, Quality: 0.3}

// Config defines the scorer configuration.
type Config struct {
	Weights  Weights `yaml:"weights"`
	PageSize int     `yaml:"pageSize" validate:"gte=0,lte=50"`
}

func (c Config) withDefaults() Config {
	if c.Weights.Mood+c.Weights.Taste <= 0 {
		c.Weights = DefaultWeights
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	return c
}
