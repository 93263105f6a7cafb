package services

import (
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	classifierDefaultModel = "gpt-4o-mini"
	classifierCacheTTL     = 24 * time.Hour
	categoryOther          = "other"
)

// complaintCategories is the fixed label set the classifier is allowed to
// return. Anything outside it is normalized to "other".
var complaintCategories = []string{
	"plumbing", "electrical", "cleaning", "furniture", "internet", "noise", "security", categoryOther,
}

// ClassifierService maps complaint text to a category label through the LLM
// collaborator. Identical text resolves from Redis without a repeat call.
type ClassifierService struct {
	Client  ChatCompletionClient
	Cache   *redis.Client
	Model   string
	timeout time.Duration
}

func NewClassifierService(client ChatCompletionClient, cache *redis.Client, model string) *ClassifierService {
	if model == "" {
		model = classifierDefaultModel
	}
	return &ClassifierService{
		Client:  client,
		Cache:   cache,
		Model:   model,
		timeout: 25 * time.Second,
	}
}

func categoryCacheKey(text string) string {
	return fmt.Sprintf("complaints:category:%x", sha1.Sum([]byte(text)))
}

// normalizeCategory lowercases and trims the raw model output and rejects
// labels outside the allowed set.
func normalizeCategory(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, `."'`)
	for _, c := range complaintCategories {
		if label == c {
			return c
		}
	}
	return categoryOther
}

func classifierPrompt() string {
	return fmt.Sprintf(
		"You categorize facility complaints from dormitory residents. "+
			"Reply with exactly one word from this list and nothing else: %s.",
		strings.Join(complaintCategories, ", "),
	)
}

func (s *ClassifierService) CategorizeComplaint(ctx context.Context, text string) (string, error) {
	key := categoryCacheKey(text)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.Client.Complete(ctx, ChatCompletionRequest{
		Model: s.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: classifierPrompt()},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("categorize complaint: %w", err)
	}

	category := normalizeCategory(resp.Content)
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, category, classifierCacheTTL).Err(); err != nil {
			log.Printf("classifier cache set failed: %v", err)
		}
	}
	return category, nil
}
