package verification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/internal/utils"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	auditPrompt = "Evaluate the food item in this image for donation safety. " +
		"Check for signs of spoilage, bruising, mold, or poor storage conditions. " +
		"Determine if it is 'Safe' or 'Unsafe' to give to someone in need. " +
		"Respond ONLY with a valid JSON object containing exactly these fields: " +
		"'isSafe' (boolean), 'confidence' (number between 0 and 1), " +
		"'description' (string, max 20 words), and 'freshnessScore' (number from 0 to 100). " +
		"Do not include any explanations, markdown formatting, or extra text."

	systemInstruction = "You are an expert food safety auditor. Provide a technical assessment " +
		"of food freshness from photographs. Your goal is to prevent food-borne illnesses in " +
		"food donation programs. Output must be strictly valid JSON."
)

type (
	// VerificationService wraps the external vision model behind a uniform
	// result contract. A single failed attempt yields the fixed fallback of
	// domain.FallbackVerification with no retry, so a submission is never
	// blocked by service unavailability.
	VerificationService interface {
		VerifyFoodImage(ctx context.Context, image []byte, mimeType string) (domain.VerificationResult, error)
	}

	verificationService struct {
		client  *http.Client
		baseURL string
	}
)

func NewVerificationService() VerificationService {
	return &verificationService{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// NewWithClient builds a gate against a custom endpoint, used by tests.
func NewWithClient(client *http.Client, baseURL string) VerificationService {
	return &verificationService{client: client, baseURL: baseURL}
}

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

func (s *verificationService) VerifyFoodImage(ctx context.Context, image []byte, mimeType string) (domain.VerificationResult, error) {
	if len(image) == 0 {
		return domain.VerificationResult{}, domain.ErrEmptyImage
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	result, err := s.callVisionModel(ctx, image, mimeType)
	if err != nil {
		log.Printf("food verification failure: %v", err)
		return domain.FallbackVerification(), nil
	}
	return result, nil
}

func (s *verificationService) callVisionModel(ctx context.Context, image []byte, mimeType string) (domain.VerificationResult, error) {
	apiKey := utils.GetConfig("GEMINI_API_KEY")
	if apiKey == "" {
		return domain.VerificationResult{}, fmt.Errorf("GEMINI_API_KEY not configured")
	}
	model := utils.GetConfig("GEMINI_MODEL")
	if model == "" {
		return domain.VerificationResult{}, fmt.Errorf("GEMINI_MODEL not configured")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, model, apiKey)

	requestBody := map[string]interface{}{
		"system_instruction": map[string]interface{}{
			"parts": []map[string]interface{}{
				{"text": systemInstruction},
			},
		},
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
					{
						"text": auditPrompt,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.VerificationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.VerificationResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.VerificationResult{}, fmt.Errorf("vision API error: %s", resp.Status)
	}

	var visionResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return domain.VerificationResult{}, err
	}
	if len(visionResp.Candidates) == 0 || len(visionResp.Candidates[0].Content.Parts) == 0 {
		return domain.VerificationResult{}, domain.ErrVerificationUnavailable
	}

	return parseResult(visionResp.Candidates[0].Content.Parts[0].Text)
}

// parseResult extracts the JSON verdict from the model's text output. All
// four fields are required; an absent or out-of-range field is a failure.
func parseResult(text string) (domain.VerificationResult, error) {
	if match := jsonPattern.FindString(text); match != "" {
		text = match
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw struct {
		IsSafe         *bool    `json:"isSafe"`
		Confidence     *float64 `json:"confidence"`
		Description    *string  `json:"description"`
		FreshnessScore *float64 `json:"freshnessScore"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.VerificationResult{}, fmt.Errorf("malformed verification response: %w", err)
	}
	if raw.IsSafe == nil || raw.Confidence == nil || raw.Description == nil || raw.FreshnessScore == nil {
		return domain.VerificationResult{}, fmt.Errorf("verification response missing required fields")
	}
	if *raw.Confidence < 0 || *raw.Confidence > 1 {
		return domain.VerificationResult{}, fmt.Errorf("confidence %f out of range", *raw.Confidence)
	}
	if *raw.FreshnessScore < 0 || *raw.FreshnessScore > 100 {
		return domain.VerificationResult{}, fmt.Errorf("freshness score %f out of range", *raw.FreshnessScore)
	}

	return domain.VerificationResult{
		IsSafe:         *raw.IsSafe,
		Confidence:     *raw.Confidence,
		Description:    *raw.Description,
		FreshnessScore: *raw.FreshnessScore,
	}, nil
}
