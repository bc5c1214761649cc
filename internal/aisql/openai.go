package aisql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"
const openAIHTTPTimeout = 120 * time.Second

// OpenAIProvider backs embeddings and transcription with the OpenAI HTTP
// API.
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: defaultOpenAIBaseURL,
		httpClient: &http.Client{
			Timeout: openAIHTTPTimeout,
		},
	}
}

// NewOpenAIProviderWithBaseURL points the provider at a non-default
// endpoint. Tests use it with an httptest server.
func NewOpenAIProviderWithBaseURL(apiKey, baseURL string) *OpenAIProvider {
	p := NewOpenAIProvider(apiKey)
	p.baseURL = baseURL
	return p
}

type openAIEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Usage *struct {
		PromptTokens int64 `json:"prompt_tokens"`
		TotalTokens  int64 `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *OpenAIProvider) Embed(ctx context.Context, model string, inputs []string) ([][]float32, Usage, error) {
	reqBody := openAIEmbeddingRequest{Model: model, Input: inputs}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, Usage{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/embeddings", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, Usage{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("aisql openai embed error: %v", err)
		return nil, Usage{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Usage{}, fmt.Errorf("reading response: %w", err)
	}

	var embResp openAIEmbeddingResponse
	if err := json.Unmarshal(respBody, &embResp); err != nil {
		return nil, Usage{}, fmt.Errorf("parsing OpenAI response: %w", err)
	}
	if embResp.Error != nil {
		log.Printf("aisql openai embed api error: %s", embResp.Error.Message)
		return nil, Usage{}, fmt.Errorf("OpenAI API error: %s", embResp.Error.Message)
	}
	if len(embResp.Data) != len(inputs) {
		return nil, Usage{}, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(embResp.Data))
	}

	usage := Usage{}
	if embResp.Usage != nil {
		usage.InputTokens = embResp.Usage.PromptTokens
	}

	// The API may return vectors out of order; the index field is the
	// contract.
	vectors := make([][]float32, len(inputs))
	for _, d := range embResp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, usage, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}

	log.Printf("aisql openai embed model=%s inputs=%d dims=%d tokens_in=%d", model, len(inputs), len(vectors[0]), usage.InputTokens)
	return vectors, usage, nil
}

type openAITranscriptionResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *OpenAIProvider) Transcribe(ctx context.Context, model, path string) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return Transcript{}, fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return Transcript{}, fmt.Errorf("reading audio file: %w", err)
	}
	_ = w.WriteField("model", model)
	_ = w.WriteField("response_format", "verbose_json")
	if err := w.Close(); err != nil {
		return Transcript{}, fmt.Errorf("building multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return Transcript{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("aisql openai transcribe error: %v", err)
		return Transcript{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcript{}, fmt.Errorf("reading response: %w", err)
	}

	var trResp openAITranscriptionResponse
	if err := json.Unmarshal(respBody, &trResp); err != nil {
		return Transcript{}, fmt.Errorf("parsing OpenAI response: %w", err)
	}
	if trResp.Error != nil {
		log.Printf("aisql openai transcribe api error: %s", trResp.Error.Message)
		return Transcript{}, fmt.Errorf("OpenAI API error: %s", trResp.Error.Message)
	}

	t := Transcript{Text: trResp.Text}
	for _, s := range trResp.Segments {
		t.Timestamps = append(t.Timestamps, TimestampedSegment{Start: s.Start, End: s.End, Text: s.Text})
	}
	log.Printf("aisql openai transcribe model=%s file=%s size=%d segments=%d", model, filepath.Base(path), len(trResp.Text), len(t.Timestamps))
	return t, nil
}
