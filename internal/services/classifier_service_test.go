package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeChatClient struct {
	content string
	err     error
	lastReq ChatCompletionRequest
}

func (f *fakeChatClient) Complete(_ context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return ChatCompletionResponse{}, f.err
	}
	return ChatCompletionResponse{Content: f.content}, nil
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"plumbing", "plumbing"},
		{"  Electrical \n", "electrical"},
		{`"noise"`, "noise"},
		{"Internet.", "internet"},
		{"HVAC", "other"},
		{"", "other"},
	}
	for _, tc := range cases {
		if got := normalizeCategory(tc.raw); got != tc.want {
			t.Fatalf("normalizeCategory(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCategorizeComplaint(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the complaint text through", func(t *testing.T) {
		client := &fakeChatClient{content: "plumbing"}
		svc := NewClassifierService(client, nil, "")

		category, err := svc.CategorizeComplaint(ctx, "Leaky faucet - Bathroom 3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if category != "plumbing" {
			t.Fatalf("expected plumbing, got %q", category)
		}
		if len(client.lastReq.Messages) != 2 || client.lastReq.Messages[1].Content != "Leaky faucet - Bathroom 3" {
			t.Fatalf("unexpected messages: %+v", client.lastReq.Messages)
		}
		if !strings.Contains(client.lastReq.Messages[0].Content, "plumbing") {
			t.Fatal("system prompt should name the allowed categories")
		}
	})

	t.Run("defaults the model", func(t *testing.T) {
		client := &fakeChatClient{content: "other"}
		svc := NewClassifierService(client, nil, "")
		svc.CategorizeComplaint(ctx, "x")
		if client.lastReq.Model != classifierDefaultModel {
			t.Fatalf("expected %q, got %q", classifierDefaultModel, client.lastReq.Model)
		}
	})

	t.Run("unknown labels normalize to other", func(t *testing.T) {
		client := &fakeChatClient{content: "Heating system"}
		svc := NewClassifierService(client, nil, "")

		category, err := svc.CategorizeComplaint(ctx, "radiator cold")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if category != categoryOther {
			t.Fatalf("expected %q, got %q", categoryOther, category)
		}
	})

	t.Run("propagates client failure", func(t *testing.T) {
		client := &fakeChatClient{err: errors.New("llm down")}
		svc := NewClassifierService(client, nil, "")

		if _, err := svc.CategorizeComplaint(ctx, "x"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestCategoryCacheKey(t *testing.T) {
	a := categoryCacheKey("Leaky faucet - Bathroom 3")
	b := categoryCacheKey("Leaky faucet - Bathroom 3")
	c := categoryCacheKey("Broken lamp - Room 5")
	if a != b {
		t.Fatal("same text must map to the same key")
	}
	if a == c {
		t.Fatal("different text must map to different keys")
	}
	if !strings.HasPrefix(a, "complaints:category:") {
		t.Fatalf("unexpected key shape %q", a)
	}
}
