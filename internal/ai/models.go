package ai

// Sampling holds the generation parameters shared by all providers.
type Sampling struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// DefaultSampling favours varied but still structured itineraries.
var DefaultSampling = Sampling{
	Temperature:     0.7,
	TopP:            0.9,
	TopK:            40,
	MaxOutputTokens: 4096,
}
