package domain

import "context"

// TextEncoder maps a query string to a fixed-length vector.
// A zero vector (or an error) means the text carried no usable signal.
type TextEncoder interface {
	EncodeText(ctx context.Context, text string) (EncodeResult, error)
}

// ImageEncoder maps an image file to a fixed-length vector under the same
// zero-vector contract as TextEncoder.
type ImageEncoder interface {
	EncodeImage(ctx context.Context, path string) (EncodeResult, error)
}

// ImageGenerator produces an image file from a text prompt when the caller
// supplied no image. Network-backed; failures degrade the image modality.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (path string, err error)
}

// KeywordExtractor maps free text to candidate keyword tokens, filtered by
// part of speech and minimum length.
type KeywordExtractor interface {
	Extract(text string) []string
}

// EncodeResult carries the vector and provider token usage through the
// decorator chain.
type EncodeResult struct {
	Vector       Vector
	PromptTokens int
	TotalTokens  int
}
