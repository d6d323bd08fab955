package collector

import "testing"

func TestSplitEditor(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  [4]string
	}{
		{
			name:  "full editor string",
			value: "vscode/1.80/copilot/1.2",
			want:  [4]string{"vscode", "1.80", "copilot", "1.2"},
		},
		{
			name:  "editor only",
			value: "vscode",
			want:  [4]string{"vscode", "N/A", "N/A", "N/A"},
		},
		{
			name:  "editor and version",
			value: "jetbrains/2023.1",
			want:  [4]string{"jetbrains", "2023.1", "N/A", "N/A"},
		},
		{
			name:  "empty",
			value: "",
			want:  [4]string{"N/A", "N/A", "N/A", "N/A"},
		},
		{
			name:  "extra segments ignored",
			value: "vscode/1.80/copilot/1.2/extra",
			want:  [4]string{"vscode", "1.80", "copilot", "1.2"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			editor, editorVersion, plugin, pluginVersion := SplitEditor(tc.value)
			got := [4]string{editor, editorVersion, plugin, pluginVersion}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
