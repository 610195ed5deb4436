package shader

import (
	"strings"
	"testing"
)

func TestProcessInjectsIncludes(t *testing.T) {
	source := "//@cosmo:include noise\n@fragment\nfn fs_main() -> @location(0) vec4<f32> {\n    return vec4<f32>(fbm(vec2<f32>(0.0, 0.0), 4));\n}\n"
	processed, err := NewPreProcessor().Process(source)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.Contains(processed, "fn fbm(") {
		t.Errorf("processed source missing injected fbm kernel")
	}
	if strings.Contains(processed, "@cosmo") {
		t.Errorf("processed source still contains an annotation")
	}
}

func TestProcessUnknownIncludeKey(t *testing.T) {
	_, err := NewPreProcessor().Process("line one\n//@cosmo:include bogus\n")
	if err == nil {
		t.Fatalf("expected error for unknown include key")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should carry the line number, got %v", err)
	}
}

func TestProcessUnknownAnnotationType(t *testing.T) {
	_, err := NewPreProcessor().Process("//@cosmo:group 0 binding 0\n")
	if err == nil {
		t.Fatalf("expected error for unknown annotation type")
	}
}

func TestProcessIncludeArgumentCount(t *testing.T) {
	_, err := NewPreProcessor().Process("//@cosmo:include noise extra\n")
	if err == nil {
		t.Fatalf("expected error for extra include argument")
	}
}

func TestNewShaderFindsEntryPoint(t *testing.T) {
	s, err := NewShader("orbTest", ShaderTypeFragment, orbSource)
	if err != nil {
		t.Fatalf("NewShader returned error: %v", err)
	}
	if got := s.EntryPoint(); got != "fs_main" {
		t.Errorf("entry point = %q, want fs_main", got)
	}
	if s.Type() != ShaderTypeFragment {
		t.Errorf("shader type = %v, want fragment", s.Type())
	}
}

func TestNewShaderMissingEntryPoint(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeVertex, "fn helper() -> f32 { return 1.0; }\n")
	if err == nil {
		t.Fatalf("expected error when no vertex entry point exists")
	}
}

func TestDefaultProgramsComplete(t *testing.T) {
	programs, err := DefaultPrograms()
	if err != nil {
		t.Fatalf("DefaultPrograms returned error: %v", err)
	}

	keys := []string{
		ProgramAurora,
		ProgramOrb,
		ProgramParticles,
		ProgramProgressRing,
		ProgramConnectionLine,
		ProgramGlass,
		ProgramTextGlow,
	}
	for _, key := range keys {
		p, ok := programs[key]
		if !ok {
			t.Fatalf("program %q missing", key)
		}
		if p.Vertex == nil || p.Fragment == nil {
			t.Fatalf("program %q missing a stage", key)
		}
		if strings.Contains(p.Fragment.Source(), "@cosmo") {
			t.Errorf("program %q fragment still contains an annotation", key)
		}
	}

	if programs[ProgramOrb].Vertex != programs[ProgramAurora].Vertex {
		t.Errorf("quad programs should share one vertex shader")
	}
	if got := len(programs[ProgramParticles].Vertex.VertexLayouts()); got != 1 {
		t.Fatalf("particle vertex layouts = %d, want 1", got)
	}
	layout := programs[ProgramParticles].Vertex.VertexLayouts()[0]
	if layout.ArrayStride != 24 {
		t.Errorf("particle instance stride = %d, want 24", layout.ArrayStride)
	}
	if len(layout.Attributes) != 5 {
		t.Errorf("particle instance attributes = %d, want 5", len(layout.Attributes))
	}
}

func TestFragmentStagesNeverDiscard(t *testing.T) {
	// Every program masks with multiplied visibility instead of discard, which
	// would defeat early fragment tests on the hot paths.
	programs, err := DefaultPrograms()
	if err != nil {
		t.Fatalf("DefaultPrograms returned error: %v", err)
	}
	for key, p := range programs {
		if strings.Contains(p.Fragment.Source(), "discard;") {
			t.Errorf("program %q fragment uses discard", key)
		}
	}
}

func TestProgramsDeclareTheirUniformStructs(t *testing.T) {
	programs, err := DefaultPrograms()
	if err != nil {
		t.Fatalf("DefaultPrograms returned error: %v", err)
	}
	wantStruct := map[string]string{
		ProgramAurora:         "struct AuroraUniform",
		ProgramOrb:            "struct OrbUniform",
		ProgramProgressRing:   "struct ProgressRingUniform",
		ProgramConnectionLine: "struct ConnectionLineUniform",
		ProgramGlass:          "struct GlassUniform",
		ProgramTextGlow:       "struct TextGlowUniform",
	}
	for key, want := range wantStruct {
		if !strings.Contains(programs[key].Fragment.Source(), want) {
			t.Errorf("program %q fragment missing %q", key, want)
		}
	}
	if !strings.Contains(programs[ProgramParticles].Vertex.Source(), "struct ParticleInstance") {
		t.Errorf("particle vertex stage missing instance struct")
	}
}
