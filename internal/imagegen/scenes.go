package imagegen

import (
	"fmt"
	"strings"

	"tryon/internal/domain"
)

const (
	SceneSubway = "subway"
	SceneCafe   = "cafe"
	SceneGym    = "gym"

	// SceneCustom identifies a single ad-hoc scene built from a free prompt.
	SceneCustom = "custom"
)

var defaultScenes = [...]domain.Scene{
	{
		ID:    SceneSubway,
		Title: "Subway sprint",
		Prompt: BuildInstruction("Same young man, same outfit, running towards the subway. " +
			"He holds a white bag in his right hand, with a worrying posture that shows how the hoodie fits when in motion, " +
			"soft shadows, warm tones, realistic lifestyle photo."),
	},
	{
		ID:    SceneCafe,
		Title: "Coffee break",
		Prompt: BuildInstruction("Same young man, same outfit, sitting in a cafeteria, sipping coffee. " +
			"He has a relaxed posture, showing comfort, showing how the hoodie fits when seated, " +
			"soft shadows, warm tones, realistic lifestyle photo."),
	},
	{
		ID:    SceneGym,
		Title: "Gym floor",
		Prompt: BuildInstruction("Same young man, same outfit, laying down in the gym, lifting weights. " +
			"He has an athletic posture, showing effort, showing how the hoodie fits when laying on the floor, " +
			"soft shadows, warm tones, realistic lifestyle photo."),
	},
}

// DefaultScenes returns a fresh copy of the fixed catalog in response order.
func DefaultScenes() []domain.Scene {
	out := make([]domain.Scene, len(defaultScenes))
	copy(out, defaultScenes[:])
	return out
}

// SelectScenes keeps the catalog order and returns only the requested ids.
// An empty selection returns the whole catalog.
func SelectScenes(ids []string) ([]domain.Scene, error) {
	if len(ids) == 0 {
		return DefaultScenes(), nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, ok := lookupScene(id); !ok {
			return nil, fmt.Errorf("unknown scene %q", id)
		}
		want[id] = true
	}
	var out []domain.Scene
	for _, scene := range defaultScenes {
		if want[scene.ID] {
			out = append(out, scene)
		}
	}
	if len(out) == 0 {
		return DefaultScenes(), nil
	}
	return out, nil
}

// CustomScene wraps a free-form prompt as a single scene.
func CustomScene(prompt string) domain.Scene {
	return domain.Scene{ID: SceneCustom, Title: "Custom prompt", Prompt: BuildInstruction(prompt)}
}

func lookupScene(id string) (domain.Scene, bool) {
	for _, scene := range defaultScenes {
		if scene.ID == id {
			return scene, true
		}
	}
	return domain.Scene{}, false
}
