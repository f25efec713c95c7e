package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kankodori/spotfinder/internal/domain"
	"github.com/kankodori/spotfinder/internal/metrics"
)

// Encoder produces text and image vectors from an OpenAI-compatible
// embeddings endpoint. The image side expects a multimodal (CLIP-style)
// server that accepts base64 data URLs as embedding input.
type Encoder struct {
	client     *openai.Client
	textModel  openai.EmbeddingModel
	imageModel openai.EmbeddingModel
	dimensions int
	provider   string
	logger     *zap.Logger
}

// Config holds the encoder provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	Dimensions int
	Provider   string
	Logger     *zap.Logger
}

// NewEncoder creates an OpenAI-compatible encoder.
func NewEncoder(cfg *Config) *Encoder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Encoder{
		client:     openai.NewClientWithConfig(clientCfg),
		textModel:  openai.EmbeddingModel(cfg.TextModel),
		imageModel: openai.EmbeddingModel(cfg.ImageModel),
		dimensions: cfg.Dimensions,
		provider:   cfg.Provider,
		logger:     cfg.Logger,
	}
}

// EncodeText implements domain.TextEncoder. Empty input yields the zero
// sentinel without a provider call.
func (e *Encoder) EncodeText(ctx context.Context, text string) (domain.EncodeResult, error) {
	if text == "" {
		return domain.EncodeResult{Vector: make(domain.Vector, e.dimensions)}, nil
	}
	return e.embed(ctx, string(domain.ModalityText), e.textModel, text)
}

// EncodeImage implements domain.ImageEncoder. The file is sent inline as a
// base64 data URL.
func (e *Encoder) EncodeImage(ctx context.Context, path string) (domain.EncodeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EncodeResult{}, fmt.Errorf("read query image %s: %w", path, err)
	}
	input := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
	return e.embed(ctx, string(domain.ModalityImage), e.imageModel, input)
}

func (e *Encoder) embed(ctx context.Context, modality string, model openai.EmbeddingModel, input string) (domain.EncodeResult, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{input},
		Model:          model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	start := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.EncodeRequestsTotal.WithLabelValues(e.provider, modality, "error").Inc()
		metrics.EncodeErrorsTotal.WithLabelValues(e.provider, modality, "api_error").Inc()
		return domain.EncodeResult{}, parseAPIError(err)
	}

	if len(resp.Data) == 0 {
		metrics.EncodeRequestsTotal.WithLabelValues(e.provider, modality, "error").Inc()
		metrics.EncodeErrorsTotal.WithLabelValues(e.provider, modality, "empty_response").Inc()
		return domain.EncodeResult{}, fmt.Errorf("empty embedding response: %w", domain.ErrEncoderUnavailable)
	}

	metrics.EncodeRequestsTotal.WithLabelValues(e.provider, modality, "success").Inc()
	metrics.EncodeRequestDuration.WithLabelValues(e.provider, modality).Observe(duration.Seconds())

	return domain.EncodeResult{
		Vector:       domain.Vector(resp.Data[0].Embedding),
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

// parseAPIError extracts a readable message from the provider response.
// Everything is wrapped with domain.ErrEncoderUnavailable so callers can
// degrade the modality with one errors.Is check.
func parseAPIError(err error) error {
	wrap := domain.ErrEncoderUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("encoder API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("encoder API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("encoder API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("encode request failed: %w", wrap)
}

// extractDetail pulls the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
