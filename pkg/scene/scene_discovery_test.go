package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestParseXMLMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.xml",
			content: `<?xml version="1.0" standalone="no" ?>
<!-- Scene: Mirror Spheres -->
<!-- Description: Two mirrors facing each other -->
<!-- Group: Reflections -->
<scene output_file="out.ppm"></scene>`,
			expected: SceneInfo{
				ID:          "xml:complete_metadata",
				Name:        "Mirror Spheres",
				DisplayName: "Mirror Spheres",
				Description: "Two mirrors facing each other",
				Group:       "Reflections",
				Type:        "xml",
			},
		},
		{
			name: "partial_metadata.xml",
			content: `<!-- Scene: Bunny -->
<scene output_file="out.ppm"></scene>`,
			expected: SceneInfo{
				ID:          "xml:partial_metadata",
				Name:        "Bunny",
				DisplayName: "Bunny",
				Group:       "Scene Files", // Default group
				Type:        "xml",
			},
		},
		{
			name: "no_metadata.xml",
			content: `<?xml version="1.0" standalone="no" ?>
<scene output_file="out.ppm">
<!-- Scene: ignored after the first element -->
</scene>`,
			expected: SceneInfo{
				ID:          "xml:no_metadata",
				Name:        "No Metadata", // From filename
				DisplayName: "No Metadata",
				Group:       "Scene Files",
				Type:        "xml",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseXMLMetadata(path)
			if err != nil {
				t.Fatalf("ParseXMLMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseXMLMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseXMLMetadata_MissingFile(t *testing.T) {
	// Missing files fall back to name-derived values
	result, err := ParseXMLMetadata("nonexistent.xml")
	if err != nil {
		t.Errorf("ParseXMLMetadata() should handle missing files gracefully: %v", err)
	}
	if result.DisplayName != "Nonexistent" {
		t.Errorf("DisplayName = %q, want %q", result.DisplayName, "Nonexistent")
	}
}

func TestListXMLScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b-scene.xml", `<!-- Scene: Beta -->`)
	writeSceneFile(t, dir, "a-scene.xml", `<!-- Scene: Alpha -->`)
	writeSceneFile(t, dir, "notes.txt", `not a scene`)

	scenes, err := ListXMLScenes(dir)
	if err != nil {
		t.Fatalf("ListXMLScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Beta" {
		t.Errorf("Scenes not sorted by display name: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "custom.xml", `<!-- Group: Custom -->`)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}

	builtIn := response.Groups[0]
	if builtIn.Name != "Built-in Scenes" {
		t.Fatalf("First group = %q, want Built-in Scenes", builtIn.Name)
	}
	if len(builtIn.Scenes) != len(BuiltinNames()) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtIn.Scenes), len(BuiltinNames()))
	}
	for _, info := range builtIn.Scenes {
		if info.Type != "builtin" || info.Description == "" {
			t.Errorf("Built-in scene %q missing type or description", info.ID)
		}
	}

	custom := response.Groups[1]
	if custom.Name != "Custom" || len(custom.Scenes) != 1 {
		t.Fatalf("Unexpected custom group %+v", custom)
	}
	if !strings.HasPrefix(custom.Scenes[0].ID, "xml:") {
		t.Errorf("XML scene ID should start with 'xml:': %s", custom.Scenes[0].ID)
	}
}
