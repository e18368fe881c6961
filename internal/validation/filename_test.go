package validation

import "testing"

func TestSanitizeArchiveName(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		modelID     string
		want        string
	}{
		{"plain", "buildings", "m1", "buildings.zip"},
		{"spaces and parens", "Buildings v2 (coastal)", "m1", "Buildings_v2__coastal_.zip"},
		{"hyphen underscore kept", "road-segmenter_v3", "m1", "road-segmenter_v3.zip"},
		{"unicode replaced", "modèle café", "m1", "mod_le_caf_.zip"},
		{"empty falls back", "", "abc-123", "model-abc-123.zip"},
		{"only unsafe chars falls back", "???", "abc-123", "model-abc-123.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeArchiveName(tt.displayName, tt.modelID); got != tt.want {
				t.Errorf("SanitizeArchiveName(%q) = %q, want %q", tt.displayName, got, tt.want)
			}
		})
	}
}

func TestValidateUploadFilename(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"model.onnx", false},
		{"metadata.yaml", false},
		{"weights_final.pt", false},
		{"", true},
		{"../escape.onnx", true},
		{"dir/file.onnx", true},
		{`dir\file.onnx`, true},
		{".", true},
		{"..", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := ValidateUploadFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUploadFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}
