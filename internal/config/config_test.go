package config

import "testing"

func validConfig() Config {
	return Config{
		Paths: PathsConfig{
			Catalog:      "data/spots.json",
			TextVectors:  "data/text_vectors.json",
			ImageVectors: "data/image_vectors.json",
		},
		Encoder: EncoderConfig{
			TextModel: "intfloat/multilingual-e5-base",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingPaths(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"catalog", func(c *Config) { c.Paths.Catalog = "" }},
		{"text_vectors", func(c *Config) { c.Paths.TextVectors = "" }},
		{"image_vectors", func(c *Config) { c.Paths.ImageVectors = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error for missing paths.%s", tc.name)
			}
		})
	}
}

func TestValidate_MissingTextModel(t *testing.T) {
	cfg := validConfig()
	cfg.Encoder.TextModel = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing encoder.text_model")
	}
}

func TestValidate_GeneratorModel(t *testing.T) {
	cfg := validConfig()
	cfg.Generator.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled generator without model")
	}

	cfg.Generator.Model = "dall-e-3"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Generator.Enabled = false
	cfg.Generator.Model = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled generator must not require a model: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Paths.QueryImageDir != "data/query" {
		t.Errorf("expected QueryImageDir='data/query', got %q", cfg.Paths.QueryImageDir)
	}
	if cfg.Encoder.Dimensions != 768 {
		t.Errorf("expected Dimensions=768, got %d", cfg.Encoder.Dimensions)
	}
	if cfg.Cache.TTLHours != 24 {
		t.Errorf("expected TTLHours=24, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Keywords.MinLength != 2 {
		t.Errorf("expected MinLength=2, got %d", cfg.Keywords.MinLength)
	}
	if len(cfg.Keywords.TargetPOS) != 5 || cfg.Keywords.TargetPOS[0] != "名詞" {
		t.Errorf("unexpected TargetPOS default: %v", cfg.Keywords.TargetPOS)
	}
	if cfg.Search.MaxResults != 20 {
		t.Errorf("expected MaxResults=20, got %d", cfg.Search.MaxResults)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Paths:    PathsConfig{QueryImageDir: "/tmp/queries"},
		Encoder:  EncoderConfig{Dimensions: 512},
		Cache:    CacheConfig{TTLHours: 1},
		Keywords: KeywordsConfig{MinLength: 3, TargetPOS: []string{"名詞"}},
		Search:   SearchConfig{MaxResults: 5},
	}
	cfg.ApplyDefaults()

	if cfg.Paths.QueryImageDir != "/tmp/queries" {
		t.Errorf("expected QueryImageDir='/tmp/queries', got %q", cfg.Paths.QueryImageDir)
	}
	if cfg.Encoder.Dimensions != 512 {
		t.Errorf("expected Dimensions=512, got %d", cfg.Encoder.Dimensions)
	}
	if cfg.Cache.TTLHours != 1 {
		t.Errorf("expected TTLHours=1, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Keywords.MinLength != 3 {
		t.Errorf("expected MinLength=3, got %d", cfg.Keywords.MinLength)
	}
	if len(cfg.Keywords.TargetPOS) != 1 {
		t.Errorf("unexpected TargetPOS: %v", cfg.Keywords.TargetPOS)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("expected MaxResults=5, got %d", cfg.Search.MaxResults)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SPOTFINDER_TEST_KEY", "secret-123")

	in := []byte("api_key: ${SPOTFINDER_TEST_KEY}\nbase_url: ${SPOTFINDER_TEST_URL:-https://api.example.com/v1/}\nempty: ${SPOTFINDER_TEST_UNSET}\n")
	got := string(expandEnvVars(in))

	want := "api_key: secret-123\nbase_url: https://api.example.com/v1/\nempty: \n"
	if got != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", got, want)
	}
}
