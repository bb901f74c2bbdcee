package grading

// Config holds grading and hint generation settings.
type Config struct {
	GradeMaxTokens int
	HintMaxTokens  int
	Temperature    float64
}

// DefaultConfig returns sensible defaults for grading.
func DefaultConfig() Config {
	return Config{
		GradeMaxTokens: 1024,
		HintMaxTokens:  256,
		Temperature:    0.2,
	}
}
