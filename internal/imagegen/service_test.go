package imagegen

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"tryon/internal/domain"
	"tryon/internal/providers/image"
)

var portrait = domain.InlineImage{MIMEType: "image/jpeg", Data: []byte("portrait")}

func TestGenerateKeepsSceneOrder(t *testing.T) {
	var prompts []string
	gen := image.GeneratorFunc(func(ctx context.Context, src domain.InlineImage, prompt string) (domain.InlineImage, error) {
		prompts = append(prompts, prompt)
		return domain.InlineImage{MIMEType: "image/webp", Data: []byte(prompt[:4])}, nil
	})
	svc := NewService(Options{Generator: gen})

	out, err := svc.Generate(context.Background(), portrait)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{SceneSubway, SceneCafe, SceneGym}
	if len(out) != len(want) {
		t.Fatalf("results = %d, want %d", len(out), len(want))
	}
	for i, id := range want {
		if out[i].Scene.ID != id {
			t.Fatalf("out[%d] = %q, want %q", i, out[i].Scene.ID, id)
		}
		if out[i].Image.MIMEType != "image/webp" {
			t.Fatalf("out[%d] MIME = %q", i, out[i].Image.MIMEType)
		}
		if prompts[i] != DefaultScenes()[i].Prompt {
			t.Fatalf("call %d used wrong prompt", i)
		}
	}
}

func TestGenerateIsSequential(t *testing.T) {
	var active, peak int32
	gen := image.GeneratorFunc(func(ctx context.Context, src domain.InlineImage, prompt string) (domain.InlineImage, error) {
		n := atomic.AddInt32(&active, 1)
		if n > atomic.LoadInt32(&peak) {
			atomic.StoreInt32(&peak, n)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return domain.InlineImage{Data: []byte("x")}, nil
	})
	if _, err := NewService(Options{Generator: gen}).Generate(context.Background(), portrait); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if peak != 1 {
		t.Fatalf("peak concurrent calls = %d, want 1", peak)
	}
}

func TestGenerateAbortsWithoutPartialResults(t *testing.T) {
	tests := []struct {
		name string
		fail func() (domain.InlineImage, error)
		kind domain.Kind
	}{
		{name: "no image", fail: func() (domain.InlineImage, error) { return domain.InlineImage{}, domain.ErrNoImage }, kind: domain.KindGeneration},
		{name: "empty data", fail: func() (domain.InlineImage, error) { return domain.InlineImage{MIMEType: "image/png"}, nil }, kind: domain.KindGeneration},
		{name: "transport", fail: func() (domain.InlineImage, error) { return domain.InlineImage{}, errors.New("connection reset") }, kind: domain.KindUnexpected},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			gen := image.GeneratorFunc(func(ctx context.Context, src domain.InlineImage, prompt string) (domain.InlineImage, error) {
				calls++
				if calls == 2 {
					return tc.fail()
				}
				return domain.InlineImage{Data: []byte("ok")}, nil
			})
			out, err := NewService(Options{Generator: gen}).Generate(context.Background(), portrait)
			if err == nil {
				t.Fatal("expected error")
			}
			if out != nil {
				t.Fatalf("partial results returned: %d", len(out))
			}
			if got := domain.KindOf(err); got != tc.kind {
				t.Fatalf("KindOf = %q, want %q", got, tc.kind)
			}
			if calls != 2 {
				t.Fatalf("calls = %d, want 2", calls)
			}
			if tc.kind == domain.KindGeneration && err.Error() != "No image returned for scene 'cafe'." {
				t.Fatalf("message = %q", err.Error())
			}
		})
	}
}

func TestGenerateStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	gen := image.GeneratorFunc(func(_ context.Context, src domain.InlineImage, prompt string) (domain.InlineImage, error) {
		calls++
		cancel()
		return domain.InlineImage{Data: []byte("ok")}, nil
	})
	_, err := NewService(Options{Generator: gen}).Generate(ctx, portrait)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestGenerateWithoutGenerator(t *testing.T) {
	_, err := NewService(Options{}).Generate(context.Background(), portrait)
	if domain.KindOf(err) != domain.KindConfig {
		t.Fatalf("KindOf = %q, want config", domain.KindOf(err))
	}
}

func TestResultsRenderDataURIs(t *testing.T) {
	gen := image.GeneratorFunc(func(ctx context.Context, src domain.InlineImage, prompt string) (domain.InlineImage, error) {
		return domain.InlineImage{Data: []byte("hello")}, nil
	})
	svc := NewService(Options{Generator: gen, Scenes: []domain.Scene{CustomScene("Same young man, rooftop.")}})
	out, err := svc.Generate(context.Background(), portrait)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	res := Results(out)
	if len(res) != 1 || res[0].ID != SceneCustom || res[0].Src != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("Results = %+v", res)
	}
}
