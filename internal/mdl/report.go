package mdl

import (
	"fmt"
	"os"
	"strings"
)

// Report renders a validation result as a human-readable document. This is
// presentation only; the verdict and diagnostics come straight from Result.
func Report(res Result) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	sep := strings.Repeat("-", 30)

	fmt.Fprintf(&b, "%s\nMDL FILE VALIDATION REPORT\n%s\n\n", rule, rule)

	status := "VALID"
	if !res.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(&b, "Overall Status: %s\n\n", status)

	fmt.Fprintf(&b, "Model Information:\n%s\n", sep)
	infoKeys := []struct{ key, label string }{
		{"model_name", "Model Name"},
		{"version", "Version"},
		{"file_size", "File Size"},
		{"vertex_count", "Vertex Count"},
		{"triangle_count", "Triangle Count"},
		{"bone_count", "Bone Count"},
		{"sequence_count", "Sequence Count"},
		{"texture_count", "Texture Count"},
	}
	for _, k := range infoKeys {
		if val, ok := res.Info[k.key]; ok {
			fmt.Fprintf(&b, "  %s: %v\n", k.label, val)
		}
	}
	b.WriteString("\n")

	if len(res.Errors) > 0 {
		fmt.Fprintf(&b, "Errors (%d):\n%s\n", len(res.Errors), sep)
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "  [E] %s\n", e)
		}
		b.WriteString("\n")
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "Warnings (%d):\n%s\n", len(res.Warnings), sep)
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  [W] %s\n", w)
		}
		b.WriteString("\n")
	}

	writeNameList(&b, sep, "Bone Hierarchy", res.Info, "bone_names")
	writeNameList(&b, sep, "Animation Sequences", res.Info, "sequence_names")
	writeNameList(&b, sep, "Textures", res.Info, "texture_names")

	if !res.Valid || len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "Recommendations:\n%s\n", sep)
		if len(res.Errors) > 0 {
			b.WriteString("  - Fix all errors before using the model in CS 1.6\n")
		}
		if len(res.Warnings) > 0 {
			b.WriteString("  - Review warnings for potential issues\n")
		}
		if n, ok := res.Info["vertex_count"].(int); ok && n > MaxVertices*4/5 {
			b.WriteString("  - Consider reducing vertex count for better performance\n")
		}
		if n, ok := res.Info["triangle_count"].(int); ok && n > MaxTriangles*4/5 {
			b.WriteString("  - Consider reducing triangle count for better performance\n")
		}
		if n, ok := res.Info["bone_count"].(int); ok && n > 64 {
			b.WriteString("  - High bone count may impact performance\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// WriteReport renders the report and saves it to path.
func WriteReport(path string, res Result) error {
	if err := os.WriteFile(path, []byte(Report(res)), 0644); err != nil {
		return fmt.Errorf("mdl: write report %s: %w", path, err)
	}
	return nil
}

func writeNameList(b *strings.Builder, sep, title string, info map[string]any, key string) {
	names, ok := info[key].([]string)
	if !ok || len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n%s\n", title, sep)
	for i, name := range names {
		fmt.Fprintf(b, "  %d: %s\n", i, name)
	}
	b.WriteString("\n")
}
