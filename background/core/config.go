package core

// RenderConfig bundles the rendering parameters of one tier.
type RenderConfig struct {
	GrassCount     int
	CloudCount     int
	PixelRatio     float32
	Antialiasing   bool
	LODEnabled     bool
	WindComplexity float32
	RenderDistance float32
}

// The table is indexed by Tier, in declaration order. It is positional so a
// tier without an entry fails the length assertions below.
var renderConfigs = [...]RenderConfig{
	// TierHigh
	{
		GrassCount:     450000,
		CloudCount:     4,
		PixelRatio:     2,
		Antialiasing:   true,
		LODEnabled:     true,
		WindComplexity: 1.0,
		RenderDistance: 90,
	},
	// TierMedium
	{
		GrassCount:     100000,
		CloudCount:     3,
		PixelRatio:     1.5,
		Antialiasing:   true,
		LODEnabled:     true,
		WindComplexity: 0.7,
		RenderDistance: 60,
	},
	// TierLow
	{
		GrassCount:     50000,
		CloudCount:     2,
		PixelRatio:     1,
		Antialiasing:   false,
		LODEnabled:     false,
		WindComplexity: 0.5,
		RenderDistance: 40,
	},
	// TierMinimal
	{
		GrassCount:     20000,
		CloudCount:     1,
		PixelRatio:     1,
		Antialiasing:   false,
		LODEnabled:     false,
		WindComplexity: 0.3,
		RenderDistance: 30,
	},
}

var (
	_ [len(renderConfigs) - int(tierCount)]struct{}
	_ [int(tierCount) - len(renderConfigs)]struct{}
)

// ConfigFor returns the configuration of t. An invalid tier gets the medium entry.
func ConfigFor(t Tier) RenderConfig {
	if !t.Valid() {
		return renderConfigs[TierMedium]
	}
	return renderConfigs[t]
}

// Field extents in world units.
const (
	fieldRangeXLOD = 300
	fieldRangeZLOD = 140
	fieldRangeX    = 150
	fieldRangeZ    = 80
)

// FieldRange returns the horizontal extents of the grass field.
func (c RenderConfig) FieldRange() (rangeX, rangeZ float32) {
	if c.LODEnabled {
		return fieldRangeXLOD, fieldRangeZLOD
	}
	return fieldRangeX, fieldRangeZ
}

// EffectivePixelRatio clamps the device pixel ratio to the tier cap.
func (c RenderConfig) EffectivePixelRatio(device float32) float32 {
	if device <= 0 {
		return 1
	}
	if device < c.PixelRatio {
		return device
	}
	return c.PixelRatio
}

// SampleCount is the MSAA sample count for the main pass.
func (c RenderConfig) SampleCount() uint32 {
	if c.Antialiasing {
		return 4
	}
	return 1
}

func (c RenderConfig) FieldKey() FieldKey {
	return FieldKey{Count: c.GrassCount, LOD: c.LODEnabled}
}
