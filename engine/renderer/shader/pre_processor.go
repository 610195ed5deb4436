// pre_processor.go implements the WGSL shader pre-processor. It scans shader
// source for @cosmo: annotations and replaces them with registered WGSL
// snippets: the noise kernel and the uniform/instance struct declarations
// embedded next to their Go GPU types. Each snippet therefore has exactly one
// source of truth, shared by every program that includes it.
package shader

import (
	"fmt"
	"strings"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/noise"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL
// comment line. Every annotation must appear on a line beginning with "//"
// followed by this prefix.
const annotationPrefix = "@cosmo:"

// IncludeKey names a registered WGSL snippet usable in //@cosmo:include lines.
type IncludeKey string

const (
	// IncludeNoise injects the noise kernel (hash21, value_noise, fbm).
	// Source: engine/noise/assets/noise.wgsl
	IncludeNoise IncludeKey = "noise"

	// IncludeOrbUniform injects the OrbUniform struct.
	// Source: engine/element/assets/orb_uniform.wgsl
	IncludeOrbUniform IncludeKey = "orb_uniform"

	// IncludeAuroraUniform injects the AuroraUniform struct.
	// Source: engine/element/assets/aurora_uniform.wgsl
	IncludeAuroraUniform IncludeKey = "aurora_uniform"

	// IncludeParticleUniform injects the ParticleUniform struct.
	// Source: engine/element/assets/particle_uniform.wgsl
	IncludeParticleUniform IncludeKey = "particle_uniform"

	// IncludeParticleInstance injects the ParticleInstance vertex input struct.
	// Source: engine/element/assets/particle_instance.wgsl
	IncludeParticleInstance IncludeKey = "particle_instance"

	// IncludeProgressRingUniform injects the ProgressRingUniform struct.
	// Source: engine/element/assets/progress_ring_uniform.wgsl
	IncludeProgressRingUniform IncludeKey = "progress_ring_uniform"

	// IncludeConnectionLineUniform injects the ConnectionLineUniform struct.
	// Source: engine/element/assets/connection_line_uniform.wgsl
	IncludeConnectionLineUniform IncludeKey = "connection_line_uniform"

	// IncludeGlassUniform injects the GlassUniform struct.
	// Source: engine/element/assets/glass_uniform.wgsl
	IncludeGlassUniform IncludeKey = "glass_uniform"

	// IncludeTextGlowUniform injects the TextGlowUniform struct.
	// Source: engine/element/assets/text_glow_uniform.wgsl
	IncludeTextGlowUniform IncludeKey = "text_glow_uniform"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps include keys to their embedded WGSL snippet sources.
	registry map[IncludeKey]string
}

// PreProcessor processes raw WGSL shader source containing @cosmo:
// annotations, replacing each include with its registered snippet.
type PreProcessor interface {
	// Process takes raw WGSL shader source and replaces every
	// //@cosmo:include line with the registered snippet it names.
	//
	// Parameters:
	//   - source: the raw WGSL shader source containing annotations
	//
	// Returns:
	//   - string: the processed WGSL source with includes injected
	//   - error: an error if an annotation is malformed or names an unknown key
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every include key registered:
// the noise kernel plus the embedded struct sources of the element GPU types.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[IncludeKey]string{
			IncludeNoise:                 noise.GPUNoiseSource,
			IncludeOrbUniform:            element.GPUOrbUniformSource,
			IncludeAuroraUniform:         element.GPUAuroraUniformSource,
			IncludeParticleUniform:       element.GPUParticleUniformSource,
			IncludeParticleInstance:      element.GPUParticleInstanceSource,
			IncludeProgressRingUniform:   element.GPUProgressRingUniformSource,
			IncludeConnectionLineUniform: element.GPUConnectionLineUniformSource,
			IncludeGlassUniform:          element.GPUGlassUniformSource,
			IncludeTextGlowUniform:       element.GPUTextGlowUniformSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		_, after, ok := strings.Cut(trimmed, annotationPrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		args := strings.Fields(after)
		if len(args) == 0 {
			return "", fmt.Errorf("line %d: empty @cosmo annotation", i+1)
		}
		if args[0] != "include" {
			return "", fmt.Errorf("line %d: unknown @cosmo annotation type %q", i+1, args[0])
		}
		if len(args) != 2 {
			return "", fmt.Errorf("line %d: @cosmo include requires exactly one argument", i+1)
		}

		snippet, found := p.registry[IncludeKey(args[1])]
		if !found {
			return "", fmt.Errorf("line %d: unknown @cosmo include key %q", i+1, args[1])
		}
		out = append(out, snippet)
	}
	return strings.Join(out, "\n"), nil
}
