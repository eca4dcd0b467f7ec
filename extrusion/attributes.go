package extrusion

// OverhangAttributes describe how far a path lies from the supporting
// boundary of the layer below. Distances are ≥ 0 and in mm.
type OverhangAttributes struct {
	StartDistance float64
	EndDistance   float64
	// ProximityToCurledLines is 0 far from curled lines and 1 on top of them.
	ProximityToCurledLines float64
	// FullOverhangSpeed marks a path printed entirely at overhang speed.
	FullOverhangSpeed bool
	// FullOverhangFlow marks a path printed entirely with bridging flow.
	FullOverhangFlow bool
}

// MaxDistance returns the larger of the start and end distances.
func (o OverhangAttributes) MaxDistance() float64 {
	return max(o.StartDistance, o.EndDistance)
}

// IsFull reports whether both speed and flow are fixed to their overhang
// values, leaving nothing to modulate.
func (o OverhangAttributes) IsFull() bool {
	return o.FullOverhangSpeed && o.FullOverhangFlow
}

// Attributes is the immutable flow description of a path. Stages that
// change it build a new value with the With methods.
type Attributes struct {
	Role Role
	// Width and Height of the cross-section, in mm.
	Width  float64
	Height float64
	// MM3PerMM is the volumetric flow rate.
	MM3PerMM float64

	overhang    OverhangAttributes
	hasOverhang bool
}

// NewAttributes returns attributes without overhang data.
func NewAttributes(role Role, mm3PerMM, width, height float64) Attributes {
	return Attributes{Role: role, Width: width, Height: height, MM3PerMM: mm3PerMM}
}

// Overhang returns the overhang attributes and whether they are set.
func (a Attributes) Overhang() (OverhangAttributes, bool) {
	return a.overhang, a.hasOverhang
}

// WithOverhang returns a copy carrying o.
func (a Attributes) WithOverhang(o OverhangAttributes) Attributes {
	a.overhang = o
	a.hasOverhang = true
	return a
}

// WithoutOverhang returns a copy without overhang data.
func (a Attributes) WithoutOverhang() Attributes {
	a.overhang = OverhangAttributes{}
	a.hasOverhang = false
	return a
}

// WithRole returns a copy with another role.
func (a Attributes) WithRole(r Role) Attributes {
	a.Role = r
	return a
}

// WithFlow returns a copy with another cross-section.
func (a Attributes) WithFlow(mm3PerMM, width, height float64) Attributes {
	a.MM3PerMM = mm3PerMM
	a.Width = width
	a.Height = height
	return a
}
