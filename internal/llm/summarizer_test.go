package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/paperverify/internal/model"
	"github.com/ppiankov/paperverify/internal/worker"
)

// fakeProvider records requests and returns a canned response
type fakeProvider struct {
	lastRequest SummarizeRequest
	response    *SummarizeResponse
	err         error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func TestNewSummarizer_DisabledProvider(t *testing.T) {
	s, err := NewSummarizer(Config{}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s != nil {
		t.Error("Expected nil summarizer when no provider is configured")
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "nope"}, nil); err == nil {
		t.Error("Expected an error for an unknown provider")
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	fake := &fakeProvider{
		response: &SummarizeResponse{Summary: "All claims check out.", Model: "fake-1"},
	}
	s := &Summarizer{
		provider: fake,
		limiter:  worker.NewLimiter(1000, 1),
		config:   Config{Model: "fake-1", MaxTokens: 200},
	}

	report := model.Report{DocumentPath: "paper.tex"}
	summary, err := s.Summarize(context.Background(), report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Provider != "fake" {
		t.Errorf("Expected provider 'fake', got '%s'", summary.Provider)
	}
	if summary.Model != "fake-1" {
		t.Errorf("Expected model 'fake-1', got '%s'", summary.Model)
	}
	if summary.SummaryMD != "All claims check out." {
		t.Errorf("Unexpected summary text: '%s'", summary.SummaryMD)
	}

	if fake.lastRequest.Model != "fake-1" || fake.lastRequest.MaxTokens != 200 {
		t.Errorf("Unexpected request passthrough: %+v", fake.lastRequest)
	}
	if fake.lastRequest.Report.DocumentPath != "paper.tex" {
		t.Error("Expected the report to be forwarded to the provider")
	}
}

func TestSummarizer_WrapsProviderErrors(t *testing.T) {
	fake := &fakeProvider{err: errors.New("quota exceeded")}
	s := &Summarizer{provider: fake}

	_, err := s.Summarize(context.Background(), model.Report{})
	if err == nil {
		t.Fatal("Expected an error")
	}
	if got := err.Error(); got != "fake: quota exceeded" {
		t.Errorf("Expected wrapped provider error, got '%s'", got)
	}
}
