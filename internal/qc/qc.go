// Package qc renders StudioMDL build scripts for compiled models. This is
// text templating over already-validated data.
package qc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"mdl-compiler/internal/mdl"
)

var scriptTmpl = template.Must(template.New("qc").Parse(`/*
==============================================================================

	MODEL: {{.ModelName}}
	Generated by mdl-compiler

==============================================================================
*/

$modelname "{{.ModelFile}}"
$cd "./"
$cdtexture "./"
$scale 1.0

{{range .Textures}}$texture "{{.}}"
{{end}}
$body "Body" "{{.ModelName}}"

{{range .Sequences}}$sequence "{{.Name}}" "{{.Name}}" fps {{.FPS}}
{{end}}
$collisionmodel "{{.ModelName}}_collision" {
	$mass 1.0
	$inertia 1.0
	$damping 0.0
	$rotdamping 0.0
}
`))

type sequenceLine struct {
	Name string
	FPS  float32
}

type scriptData struct {
	ModelName string
	ModelFile string
	Textures  []string
	Sequences []sequenceLine
}

// Generate renders the QC script for a model compiled to mdlPath.
func Generate(m *mdl.Model, mdlPath string) (string, error) {
	data := scriptData{
		ModelName: m.Name,
		ModelFile: filepath.Base(mdlPath),
	}
	for _, t := range m.Textures {
		data.Textures = append(data.Textures, t.Name)
	}
	for _, s := range m.Sequences {
		data.Sequences = append(data.Sequences, sequenceLine{s.Name, s.FPS})
	}
	if len(data.Sequences) == 0 {
		// StudioMDL requires at least one sequence.
		data.Sequences = append(data.Sequences, sequenceLine{"idle", 30})
	}

	var b strings.Builder
	if err := scriptTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("qc: render %s: %w", m.Name, err)
	}
	return b.String(), nil
}

// Write renders the QC script and saves it to path.
func Write(path string, m *mdl.Model, mdlPath string) error {
	script, err := Generate(m, mdlPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return fmt.Errorf("qc: write %s: %w", path, err)
	}
	return nil
}
