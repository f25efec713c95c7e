package openai

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Generator synthesizes a query image from a text prompt through the
// images API. Used when the caller supplied no image of their own.
type Generator struct {
	client *openai.Client
	model  string
	outDir string
	logger *zap.Logger
}

// GeneratorConfig holds the image generator settings.
type GeneratorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	OutDir  string
	Logger  *zap.Logger
}

// NewGenerator creates an image generator writing into cfg.OutDir.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		outDir: cfg.OutDir,
		logger: cfg.Logger,
	}
}

// Generate implements domain.ImageGenerator. The file name is derived from
// the prompt hash so repeated prompts overwrite rather than accumulate.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", parseAPIError(err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("empty image response")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return "", fmt.Errorf("decode generated image: %w", err)
	}

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	h := sha256.Sum256([]byte(prompt))
	path := filepath.Join(g.outDir, hex.EncodeToString(h[:8])+".jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write generated image: %w", err)
	}

	g.logger.Info("Generated query image",
		zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}
