package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider defines the interface for WhatsApp API providers. SendMessage
// returns the provider message id so delivery callbacks can be matched
// back to the invoice that triggered the notice.
type Provider interface {
	SendMessage(phone, text string) (messageID string, err error)
	GetName() string
}

// Config holds configuration for WhatsApp providers
type Config struct {
	Provider      string // "wasender", "meta"
	APIKey        string
	PhoneNumberID string // Meta Cloud API phone number id
	BaseURL       string
}

// WaSenderService implements WhatsApp via the WaSender gateway
type WaSenderService struct {
	config *Config
	client *http.Client
}

// NewWaSenderService creates a new WaSender WhatsApp service
func NewWaSenderService(apiURL, apiKey string) *WaSenderService {
	return &WaSenderService{
		config: &Config{
			Provider: "wasender",
			APIKey:   apiKey,
			BaseURL:  apiURL,
		},
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SendMessage sends a text message via WaSender
func (s *WaSenderService) SendMessage(phone, text string) (string, error) {
	if s.config.BaseURL == "" {
		return "", fmt.Errorf("missing WaSender API configuration")
	}

	payload := map[string]string{
		"to":   FormatRwandaNumber(phone),
		"text": text,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.config.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("WaSender API error (status %d): %s", resp.StatusCode, string(body))
	}

	// WaSender has returned message ids in two shapes across versions
	var parsed struct {
		Status    string `json:"status"`
		MessageID string `json:"messageId"`
		Data      struct {
			Success bool `json:"success"`
			Key     struct {
				ID string `json:"id"`
			} `json:"key"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse WaSender response: %w", err)
	}
	if !parsed.Data.Success && parsed.Status != "success" {
		return "", fmt.Errorf("WaSender rejected message: %s", string(body))
	}
	if parsed.Data.Key.ID != "" {
		return parsed.Data.Key.ID, nil
	}
	return parsed.MessageID, nil
}

// GetName returns the provider name
func (s *WaSenderService) GetName() string {
	return "WaSender"
}

// MetaCloudService implements WhatsApp via the Meta Cloud API
// (works with any BSP exposing the standard Business Cloud API)
type MetaCloudService struct {
	config *Config
	client *http.Client
}

// NewMetaCloudService creates a new Meta Cloud API WhatsApp service
func NewMetaCloudService(apiKey, phoneNumberID string) *MetaCloudService {
	return &MetaCloudService{
		config: &Config{
			Provider:      "meta",
			APIKey:        apiKey,
			PhoneNumberID: phoneNumberID,
			BaseURL:       "https://graph.facebook.com/v18.0",
		},
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL allows overriding the API base URL (for BSP proxies)
func (s *MetaCloudService) SetBaseURL(url string) {
	s.config.BaseURL = url
}

// SendMessage sends a text message via the WhatsApp Cloud API.
// Only works inside the 24-hour customer service window.
func (s *MetaCloudService) SendMessage(phone, text string) (string, error) {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                FormatRwandaNumber(phone),
		"type":              "text",
		"text": map[string]string{
			"preview_url": "false",
			"body":        text,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.config.BaseURL, s.config.PhoneNumberID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("WhatsApp API error: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("WhatsApp API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Messages) == 0 {
		return "", fmt.Errorf("no message id in response: %s", string(body))
	}
	return parsed.Messages[0].ID, nil
}

// GetName returns the provider name
func (s *MetaCloudService) GetName() string {
	return "Meta Cloud API"
}

// NewProvider creates a WhatsApp provider based on provider name.
// Returns nil when nothing is configured; callers treat a nil provider
// as notifications disabled.
func NewProvider(provider, apiURL, apiKey, phoneNumberID string) Provider {
	switch provider {
	case "wasender":
		if apiURL == "" {
			return nil
		}
		return NewWaSenderService(apiURL, apiKey)
	case "meta", "cloud":
		if apiKey == "" || phoneNumberID == "" {
			return nil
		}
		return NewMetaCloudService(apiKey, phoneNumberID)
	default:
		if apiURL != "" {
			return NewWaSenderService(apiURL, apiKey)
		}
		return nil
	}
}

// FormatRwandaNumber normalizes a phone number to the country-code-prefixed
// digit format the gateways expect (2507XXXXXXXX). Local 07x and bare 7x
// forms get the 250 prefix; anything else is returned digits-only.
func FormatRwandaNumber(raw string) string {
	if raw == "" {
		return ""
	}

	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	phone := string(digits)

	switch {
	case len(phone) >= 2 && phone[:2] == "07":
		return "250" + phone[1:]
	case len(phone) >= 1 && phone[0] == '7':
		return "250" + phone
	case len(phone) == 9 && phone[:3] != "250":
		return "250" + phone
	default:
		return phone
	}
}

// Sendable reports whether a normalized number looks complete enough to
// hand to a gateway
func Sendable(phone string) bool {
	return len(phone) >= 10
}
