// Package catalog holds the static description of every design mode the
// wizard supports.
package catalog

import (
	"fmt"
	"strings"
)

// Mode identifies a design domain.
type Mode string

const (
	ModeUI       Mode = "ui"
	ModeInterior Mode = "interior"
	ModePhoto    Mode = "photo"
	ModeAsset    Mode = "asset"
)

// Implementation describes how the secondary prompt is produced for a mode.
type Implementation int

const (
	// ImplementationGeneric uses placeholder text.
	ImplementationGeneric Implementation = iota
	// ImplementationDerived asks the model for a code-generation prompt.
	ImplementationDerived
	// ImplementationFixed uses a static technical specification.
	ImplementationFixed
)

// Entry is the catalog record for one mode.
type Entry struct {
	Mode        Mode
	Label       string // Short name shown in the mode list
	Summary     string // One-line description shown under the label
	Context     string // Descriptive context embedded in every instruction
	Subject     string // What the user is describing ("app", "space", ...)
	Placeholder string // Example idea for the input step
	Items       string // Name of the enumerated section ("页面", "素材", ...)

	// MinItems and MaxItems bound the enumerated section.
	// For ModeAsset both are 1 (single icon format).
	MinItems int
	MaxItems int

	Implementation Implementation
}

var entries = []Entry{
	{
		Mode:    ModeUI,
		Label:   "UI Design",
		Summary: "App and web screens: layouts, components, navigation",
		Context: "You are a Senior UI/UX Product Designer. The output describes the user interface " +
			"screens of a digital product (mobile app or web app). Focus on layout, components, " +
			"typography, color and interaction affordances. Only user interface screens, no " +
			"marketing material, no device mockups.",
		Subject:        "app",
		Placeholder:    "e.g., A minimalist meditation app focusing on breathing exercises...",
		Items:          "包含页面",
		MinItems:       3,
		MaxItems:       5,
		Implementation: ImplementationDerived,
	},
	{
		Mode:    ModeInterior,
		Label:   "Interior Design",
		Summary: "Rooms and spaces: materials, lighting, furniture",
		Context: "You are a Senior Interior Designer. The output describes rendered views of a " +
			"physical interior space. Focus on materials, lighting, furniture, spatial layout " +
			"and color palette.",
		Subject:        "space",
		Placeholder:    "e.g., A cozy reading nook in a small city apartment...",
		Items:          "包含视角",
		MinItems:       3,
		MaxItems:       5,
		Implementation: ImplementationGeneric,
	},
	{
		Mode:    ModePhoto,
		Label:   "Photography",
		Summary: "Photo shoots and edits: lighting, lens, grading",
		Context: "You are a Senior Photographer and Photo Editor. The output describes a series " +
			"of photographs or edits. Focus on lighting, lens choice, composition, color grading " +
			"and post-processing.",
		Subject:        "photo series",
		Placeholder:    "e.g., Product shots for a handmade ceramic mug brand...",
		Items:          "包含画面",
		MinItems:       3,
		MaxItems:       5,
		Implementation: ImplementationGeneric,
	},
	{
		Mode:    ModeAsset,
		Label:   "Asset / Icon",
		Summary: "A single app icon or visual asset",
		Context: "You are a Senior Icon and Visual Asset Designer. The output describes exactly one " +
			"icon or asset, centered on a plain background, readable at small sizes.",
		Subject:        "asset",
		Placeholder:    "e.g., An app icon for a budgeting tool called Penny...",
		Items:          "素材",
		MinItems:       1,
		MaxItems:       1,
		Implementation: ImplementationFixed,
	},
}

// All returns every catalog entry in display order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the entry for m.
func Lookup(m Mode) (Entry, bool) {
	for _, e := range entries {
		if e.Mode == m {
			return e, true
		}
	}
	return Entry{}, false
}

// MustLookup returns the entry for m and panics for unknown modes.
func MustLookup(m Mode) Entry {
	e, ok := Lookup(m)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown mode %q", m))
	}
	return e
}

// Parse converts a user-supplied mode name. It accepts the mode id or the
// label, case-insensitively.
func Parse(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range entries {
		if s == string(e.Mode) || s == strings.ToLower(e.Label) {
			return e.Mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (valid: %s)", s, strings.Join(Names(), ", "))
}

// Names returns the mode ids in display order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, string(e.Mode))
	}
	return names
}

// Index returns the display position of m, or -1.
func Index(m Mode) int {
	for i, e := range entries {
		if e.Mode == m {
			return i
		}
	}
	return -1
}
