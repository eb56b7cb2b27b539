package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("UNSPLASH_ACCESS_KEY", "u-key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, LLMGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, ImagesUnsplash, cfg.Images.Provider)
	assert.Equal(t, DefaultFallbackImageURL, cfg.Images.FallbackURL)
	assert.Equal(t, 24*time.Hour, cfg.Images.CacheTTL)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WANDERLUST_HTTP_ADDR", ":9090")
	t.Setenv("WANDERLUST_CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("WANDERLUST_PUBLIC_BASE_URL", "https://api.example/")
	t.Setenv("WANDERLUST_STORE", "MONGO")
	t.Setenv("WANDERLUST_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("WANDERLUST_IMAGE_PROVIDER", "places")
	t.Setenv("GOOGLE_MAPS_API_KEY", "m-key")
	t.Setenv("WANDERLUST_IMAGE_CACHE_TTL", "30m")
	t.Setenv("WANDERLUST_DB_AUTO_MIGRATE", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "https://api.example", cfg.HTTP.PublicBaseURL)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, LLMOpenAI, cfg.LLM.Provider)
	assert.Equal(t, ImagesPlaces, cfg.Images.Provider)
	assert.Equal(t, 30*time.Minute, cfg.Images.CacheTTL)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromEnvValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing gemini key", map[string]string{"UNSPLASH_ACCESS_KEY": "u"}},
		{"missing openai key", map[string]string{"WANDERLUST_LLM_PROVIDER": "openai", "UNSPLASH_ACCESS_KEY": "u"}},
		{"unknown llm", map[string]string{"WANDERLUST_LLM_PROVIDER": "claude", "UNSPLASH_ACCESS_KEY": "u"}},
		{"missing unsplash key", map[string]string{"GEMINI_API_KEY": "g"}},
		{"missing maps key", map[string]string{"GEMINI_API_KEY": "g", "WANDERLUST_IMAGE_PROVIDER": "places"}},
		{"unknown store", map[string]string{"GEMINI_API_KEY": "g", "UNSPLASH_ACCESS_KEY": "u", "WANDERLUST_STORE": "sqlite"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "")
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("UNSPLASH_ACCESS_KEY", "")
			t.Setenv("GOOGLE_MAPS_API_KEY", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestImagesNoneNeedsNoKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("UNSPLASH_ACCESS_KEY", "")
	t.Setenv("WANDERLUST_IMAGE_PROVIDER", "none")

	_, err := FromEnv()
	assert.NoError(t, err)
}
