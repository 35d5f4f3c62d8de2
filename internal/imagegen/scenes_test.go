package imagegen

import (
	"strings"
	"testing"
)

func sceneIDs(t *testing.T, ids []string) string {
	t.Helper()
	return strings.Join(ids, ",")
}

func TestDefaultScenesOrder(t *testing.T) {
	scenes := DefaultScenes()
	var ids []string
	for _, s := range scenes {
		ids = append(ids, s.ID)
		if s.Title == "" || !strings.HasPrefix(s.Prompt, "Generate a photorealistic image of the person.") {
			t.Fatalf("scene %q incomplete: %+v", s.ID, s)
		}
	}
	if got := sceneIDs(t, ids); got != "subway,cafe,gym" {
		t.Fatalf("scene order = %s", got)
	}
}

func TestDefaultScenesReturnsCopy(t *testing.T) {
	scenes := DefaultScenes()
	scenes[0].ID = "mutated"
	if DefaultScenes()[0].ID != SceneSubway {
		t.Fatal("catalog was mutated through returned slice")
	}
}

func TestSelectScenes(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		want    string
		wantErr bool
	}{
		{name: "empty selects all", want: "subway,cafe,gym"},
		{name: "keeps catalog order", ids: []string{"gym", "subway"}, want: "subway,gym"},
		{name: "case and spaces", ids: []string{" CAFE "}, want: "cafe"},
		{name: "unknown scene", ids: []string{"beach"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectScenes(tc.ids)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectScenes error: %v", err)
			}
			var ids []string
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			if sceneIDs(t, ids) != tc.want {
				t.Fatalf("SelectScenes = %v, want %s", ids, tc.want)
			}
		})
	}
}

func TestCustomScene(t *testing.T) {
	scene := CustomScene("Same young man on a beach at sunset.")
	if scene.ID != SceneCustom {
		t.Fatalf("ID = %q", scene.ID)
	}
	if !strings.HasSuffix(scene.Prompt, "Same young man on a beach at sunset.") {
		t.Fatalf("Prompt = %q", scene.Prompt)
	}
}
