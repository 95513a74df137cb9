package generate

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

// fakeClient scripts GeminiClient responses for generator tests.
type fakeClient struct {
	response  string
	err       error
	lastModel string
	lastText  string
}

func (f *fakeClient) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.lastText = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: f.response}}}},
		},
	}, nil
}

func (f *fakeClient) ListModels(_ context.Context) ([]ModelInfo, error) {
	return []ModelInfo{{Name: "models/gemini-2.0-flash"}}, nil
}

func TestGeminiGeneratorGenerate(t *testing.T) {
	client := &fakeClient{response: "Fix login crash"}
	gen := NewGeminiGenerator(client)

	msg, err := gen.Generate(context.Background(), Input{Digest: `{"files":[]}`, Model: "gemini-test"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if msg != "Fix login crash" {
		t.Errorf("Generate() = %q", msg)
	}
	if client.lastModel != "gemini-test" {
		t.Errorf("model %q sent, want gemini-test", client.lastModel)
	}
	if want := BuildPrompt(`{"files":[]}`); client.lastText != want {
		t.Errorf("prompt mismatch:\ngot  %q\nwant %q", client.lastText, want)
	}
}

func TestGeminiGeneratorDefaultModel(t *testing.T) {
	client := &fakeClient{response: "msg"}
	_, err := NewGeminiGenerator(client).Generate(context.Background(), Input{Digest: "{}"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if client.lastModel != DefaultModel {
		t.Errorf("model %q, want default %q", client.lastModel, DefaultModel)
	}
}

func TestGeminiGeneratorStripsFences(t *testing.T) {
	client := &fakeClient{response: "```\nAdd search\n```"}
	msg, err := NewGeminiGenerator(client).Generate(context.Background(), Input{Digest: "{}"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if msg != "Add search" {
		t.Errorf("fences not stripped: %q", msg)
	}
}

func TestGeminiGeneratorErrors(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	_, err := NewGeminiGenerator(client).Generate(context.Background(), Input{Digest: "{}"})
	if err == nil {
		t.Fatal("expected error from failing client")
	}

	client = &fakeClient{response: "   \n"}
	_, err = NewGeminiGenerator(client).Generate(context.Background(), Input{Digest: "{}"})
	if err == nil {
		t.Fatal("expected error for empty model output")
	}
}

func TestNewSDKClientRequiresKey(t *testing.T) {
	if _, err := NewSDKClient(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
