package extrusion

import "strings"

// Role is a set of modifier bits describing what an extrusion is for.
// Base roles are fixed combinations of modifiers.
type Role uint16

// Modifier bits.
const (
	ModPerimeter Role = 1 << iota
	ModInfill
	ModSolid
	ModExternal
	ModBridge
	ModThinWall
	ModGapFill
	ModSkirt
)

// Base roles.
const (
	RoleNone                      Role = 0
	RolePerimeter                      = ModPerimeter
	RoleExternalPerimeter              = ModPerimeter | ModExternal
	RoleOverhangPerimeter              = ModPerimeter | ModBridge
	RoleExternalOverhangPerimeter      = ModPerimeter | ModExternal | ModBridge
	RoleThinWall                       = ModPerimeter | ModThinWall
	RoleInternalInfill                 = ModInfill
	RoleSolidInfill                    = ModInfill | ModSolid
	RoleTopSolidInfill                 = ModInfill | ModSolid | ModExternal
	RoleBridgeInfill                   = ModInfill | ModSolid | ModBridge
	RoleGapFill                        = ModGapFill
	RoleSkirt                          = ModSkirt
)

var roleNames = map[Role]string{
	RoleNone:                      "none",
	RolePerimeter:                 "perimeter",
	RoleExternalPerimeter:         "external-perimeter",
	RoleOverhangPerimeter:         "overhang-perimeter",
	RoleExternalOverhangPerimeter: "external-overhang-perimeter",
	RoleThinWall:                  "thin-wall",
	RoleInternalInfill:            "internal-infill",
	RoleSolidInfill:               "solid-infill",
	RoleTopSolidInfill:            "top-solid-infill",
	RoleBridgeInfill:              "bridge-infill",
	RoleGapFill:                   "gap-fill",
	RoleSkirt:                     "skirt",
}

var modifierNames = []string{"perimeter", "infill", "solid", "external", "bridge", "thin-wall", "gap-fill", "skirt"}

// Has reports whether every bit of m is set.
func (r Role) Has(m Role) bool { return r&m == m }

// IsPerimeter reports whether the role is any kind of perimeter.
func (r Role) IsPerimeter() bool { return r.Has(ModPerimeter) }

// IsExternal reports whether the role faces the outside of the object.
func (r Role) IsExternal() bool { return r.Has(ModExternal) }

// IsBridge reports whether the role is printed over air.
func (r Role) IsBridge() bool { return r.Has(ModBridge) }

// WithoutBridge clears the bridge modifier and keeps the others.
func (r Role) WithoutBridge() Role { return r &^ ModBridge }

// WithBridge sets the bridge modifier.
func (r Role) WithBridge() Role { return r | ModBridge }

// String returns the role name, or its modifiers joined by '+'.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	var parts []string
	for i, name := range modifierNames {
		if r&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "+")
}
