// Package metadata parses uploaded training metadata documents and enriches
// them with derived fields (class list, precision, quantization, display
// strings) before they are stored alongside a model version.
package metadata

import (
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CanonicalModelFormat is the default model_format tag applied when an upload
// does not declare one.
const CanonicalModelFormat = "ONNX"

// ParseYAML decodes a metadata document into a JSON-safe map. YAML mappings
// with non-string keys (YOLO class indices are integers) are converted to
// string-keyed maps recursively so the result can be stored in a JSONB column.
// An empty document yields an empty map.
func ParseYAML(data []byte) (map[string]interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse metadata YAML: %w", err)
	}
	if raw == nil {
		return map[string]interface{}{}, nil
	}

	normalized := normalize(raw)
	m, ok := normalized.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("metadata document must be a mapping, got %T", raw)
	}
	return m, nil
}

// normalize recursively converts yaml.v3 decoding artifacts into JSON-safe
// values: map keys become strings and nested structures are walked.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}

// Enrich derives computed fields from a raw metadata record. It is pure: the
// input map is not mutated, and missing or malformed source fields skip their
// derivation rather than failing.
//
//	names      → num_classes, class_list
//	imgsz      → image_size_display
//	train_args.half → precision (FP16/FP32)
//	train_args.int8 → quantization (INT8/None)
//	model_format defaults when absent
func Enrich(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw)+5)
	for k, v := range raw {
		out[k] = v
	}

	if names, ok := out["names"].(map[string]interface{}); ok {
		out["num_classes"] = len(names)
		out["class_list"] = orderedClassList(names)
	}

	if display, ok := imageSizeDisplay(out["imgsz"]); ok {
		out["image_size_display"] = display
	}

	if trainArgs, ok := out["train_args"].(map[string]interface{}); ok {
		if half, ok := trainArgs["half"]; ok {
			if truthy(half) {
				out["precision"] = "FP16"
			} else {
				out["precision"] = "FP32"
			}
		}
		if int8Flag, ok := trainArgs["int8"]; ok {
			if truthy(int8Flag) {
				out["quantization"] = "INT8"
			} else {
				out["quantization"] = "None"
			}
		}
	}

	if _, ok := out["model_format"]; !ok {
		out["model_format"] = CanonicalModelFormat
	}

	return out
}

// orderedClassList returns the values of a names mapping ordered by class
// index. Go maps lose the document's key order, but YOLO names keys are the
// numeric class indices, so numeric key order reconstructs it. Non-numeric
// keys sort lexicographically after the numeric ones.
func orderedClassList(names map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iErr := strconv.Atoi(keys[i])
		nj, jErr := strconv.Atoi(keys[j])
		switch {
		case iErr == nil && jErr == nil:
			return ni < nj
		case iErr == nil:
			return true
		case jErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	values := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		values = append(values, names[k])
	}
	return values
}

// imageSizeDisplay renders an imgsz [width, height] pair as a display string.
// Equal dimensions collapse to a single number ("640"); unequal render as
// "640x480". Anything other than a two-element numeric list is skipped.
func imageSizeDisplay(v interface{}) (string, bool) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) != 2 {
		return "", false
	}

	width, ok := asInt(pair[0])
	if !ok {
		return "", false
	}
	height, ok := asInt(pair[1])
	if !ok {
		return "", false
	}

	if width == height {
		return strconv.Itoa(width), true
	}
	return fmt.Sprintf("%dx%d", width, height), true
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func truthy(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
