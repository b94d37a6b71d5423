package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Synthesizer converts text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	elevenLabsModel   = "eleven_monolingual_v1"
	minAPIKeyLength   = 32
)

// ElevenLabsClient synthesizes speech through the ElevenLabs HTTP API.
type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// NewElevenLabsClient validates the API key and returns a client bound
// to one voice. Placeholder keys from an unconfigured environment are
// rejected up front.
func NewElevenLabsClient(apiKey, voiceID string, log *zap.SugaredLogger) (*ElevenLabsClient, error) {
	lower := strings.ToLower(apiKey)
	if strings.Contains(lower, "your-") || strings.Contains(lower, "api-key") {
		return nil, fmt.Errorf("elevenlabs api key is a placeholder value")
	}
	if len(apiKey) < minAPIKeyLength {
		return nil, fmt.Errorf("elevenlabs api key is invalid (too short)")
	}

	log.Infow("speech client initialized", "api_key", maskKey(apiKey), "voice_id", voiceID)

	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: elevenLabsBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}, nil
}

// Synthesize cleans the text for speech and returns the generated
// audio bytes.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cleaned := CleanForSpeech(text)
	if cleaned == "" {
		return nil, fmt.Errorf("no speakable text after cleaning")
	}

	body, err := json.Marshal(ttsRequest{
		Text:    cleaned,
		ModelID: elevenLabsModel,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("text-to-speech returned status %d: %s", resp.StatusCode, string(detail))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debugw("speech synthesized", "bytes", len(audio))
	return audio, nil
}

// maskKey hides all but the first and last four characters of a key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
