package metadata

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseYAML_NumericKeys(t *testing.T) {
	doc := []byte(`
names:
  0: building
  1: road
  2: vehicle
imgsz: [640, 640]
`)
	m, err := ParseYAML(doc)
	if err != nil {
		t.Fatalf("ParseYAML returned error: %v", err)
	}

	names, ok := m["names"].(map[string]interface{})
	if !ok {
		t.Fatalf("names is %T, want string-keyed map", m["names"])
	}
	if names["0"] != "building" {
		t.Errorf(`names["0"] = %v, want building`, names["0"])
	}

	// The whole structure must survive a JSON round trip for JSONB storage.
	if _, err := json.Marshal(m); err != nil {
		t.Errorf("parsed metadata is not JSON-serializable: %v", err)
	}
}

func TestParseYAML_Empty(t *testing.T) {
	m, err := ParseYAML([]byte(""))
	if err != nil {
		t.Fatalf("ParseYAML returned error: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestParseYAML_NotAMapping(t *testing.T) {
	if _, err := ParseYAML([]byte("- just\n- a\n- list\n")); err == nil {
		t.Error("expected error for non-mapping document, got nil")
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	if _, err := ParseYAML([]byte("names: [unclosed")); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestEnrich_Names(t *testing.T) {
	raw := map[string]interface{}{
		"names": map[string]interface{}{
			"0":  "building",
			"1":  "road",
			"2":  "vehicle",
			"10": "bridge",
		},
	}

	out := Enrich(raw)

	if out["num_classes"] != 4 {
		t.Errorf("num_classes = %v, want 4", out["num_classes"])
	}
	// Class list follows numeric index order, so "10" comes after "2".
	want := []interface{}{"building", "road", "vehicle", "bridge"}
	if !reflect.DeepEqual(out["class_list"], want) {
		t.Errorf("class_list = %v, want %v", out["class_list"], want)
	}
}

func TestEnrich_ImageSizeDisplay(t *testing.T) {
	tests := []struct {
		name  string
		imgsz interface{}
		want  string
		skip  bool
	}{
		{"square", []interface{}{640, 640}, "640", false},
		{"rectangular", []interface{}{640, 480}, "640x480", false},
		{"floats from yaml", []interface{}{float64(1024), float64(1024)}, "1024", false},
		{"absent", nil, "", true},
		{"wrong length", []interface{}{640}, "", true},
		{"non-numeric", []interface{}{"a", "b"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]interface{}{}
			if tt.imgsz != nil {
				raw["imgsz"] = tt.imgsz
			}
			out := Enrich(raw)
			got, present := out["image_size_display"]
			if tt.skip {
				if present {
					t.Errorf("expected no image_size_display, got %v", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("image_size_display = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestEnrich_PrecisionAndQuantization(t *testing.T) {
	tests := []struct {
		name         string
		trainArgs    interface{}
		precision    interface{}
		quantization interface{}
	}{
		{"half true int8 false", map[string]interface{}{"half": true, "int8": false}, "FP16", "None"},
		{"half false int8 true", map[string]interface{}{"half": false, "int8": true}, "FP32", "INT8"},
		{"only half", map[string]interface{}{"half": true}, "FP16", nil},
		{"only int8", map[string]interface{}{"int8": false}, nil, "None"},
		{"empty train_args", map[string]interface{}{}, nil, nil},
		{"train_args absent", nil, nil, nil},
		{"train_args not a map", "weird", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]interface{}{}
			if tt.trainArgs != nil {
				raw["train_args"] = tt.trainArgs
			}
			out := Enrich(raw)

			if got := out["precision"]; got != tt.precision {
				t.Errorf("precision = %v, want %v", got, tt.precision)
			}
			if got := out["quantization"]; got != tt.quantization {
				t.Errorf("quantization = %v, want %v", got, tt.quantization)
			}
		})
	}
}

func TestEnrich_ModelFormatDefault(t *testing.T) {
	out := Enrich(map[string]interface{}{})
	if out["model_format"] != CanonicalModelFormat {
		t.Errorf("model_format = %v, want %s", out["model_format"], CanonicalModelFormat)
	}

	out = Enrich(map[string]interface{}{"model_format": "TensorRT"})
	if out["model_format"] != "TensorRT" {
		t.Errorf("existing model_format overwritten: %v", out["model_format"])
	}
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	raw := map[string]interface{}{
		"names": map[string]interface{}{"0": "building"},
	}
	Enrich(raw)
	if _, present := raw["num_classes"]; present {
		t.Error("Enrich mutated its input")
	}
	if len(raw) != 1 {
		t.Errorf("input map changed size: %v", raw)
	}
}
