package gateway

import (
	"fmt"
	"strings"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"google.golang.org/genai"
)

// StyleSchema is the declared response schema for style proposals: an array
// of objects with required string fields name and description.
func StyleSchema() *genai.Schema {
	n := int64(StylesPerBatch)
	return &genai.Schema{
		Type:     genai.TypeArray,
		MinItems: &n,
		MaxItems: &n,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "Short evocative name of the visual style",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "Vivid description that helps the user imagine the look",
				},
			},
			Required: []string{"name", "description"},
		},
	}
}

func proposeInstruction(entry catalog.Entry, req ProposeRequest) string {
	var b strings.Builder

	if idea := strings.TrimSpace(req.Idea); idea != "" {
		fmt.Fprintf(&b, "Analyze this %s idea: %q.\n", entry.Subject, idea)
	} else {
		fmt.Fprintf(&b, "Analyze the attached reference image as the starting point for a %s.\n", entry.Subject)
	}
	fmt.Fprintf(&b, "Design domain: %s.\n\n", entry.Label)
	fmt.Fprintf(&b, "Propose %d distinct visual styles suitable for this specific %s.\n", StylesPerBatch, entry.Subject)

	if req.Image != nil {
		b.WriteString("A reference image is attached. Fold its visual character (palette, materials, " +
			"shapes, lighting, mood) into exactly one of the proposals and say so in its description.\n")
	}

	if req.Reroll {
		b.WriteString("The user rejected the previous proposals. Propose completely different styles")
		if len(req.Avoid) > 0 {
			fmt.Fprintf(&b, "; do not repeat or closely resemble: %s", strings.Join(req.Avoid, ", "))
		}
		b.WriteString(".\n")
	}

	b.WriteString("\nReturn the response as a JSON array of objects with 'name' and 'description' keys. " +
		"The 'description' should be a vivid text description that helps the user imagine the look.")

	return b.String()
}

func finalInstruction(entry catalog.Entry, req FinalRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Idea: %q\n", strings.TrimSpace(req.Idea))
	fmt.Fprintf(&b, "Selected Style: %s\n\n", strings.TrimSpace(req.Style))

	switch entry.Mode {
	case catalog.ModeAsset:
		b.WriteString("Generate a structured icon design prompt in CHINESE strictly following this format. " +
			"Describe exactly ONE icon; do not list screens or multiple assets.\n")
		b.WriteString("设计一个[素材名称]的图标。\n")
		b.WriteString("风格: [Style Keywords, Colors, Shapes, Background].\n")
		b.WriteString("素材:\n")
		b.WriteString("1. [Icon subject] (1024x1024, 居中构图, 纯色背景, [Key visual details]).\n")
		b.WriteString("氛围: [Atmosphere Keywords].\n")
		return b.String()
	case catalog.ModeUI:
		b.WriteString("Generate a structured UI design prompt in CHINESE strictly following this format. " +
			"List user interface screens only; no marketing pages, splash art or device mockups.\n")
		b.WriteString("设计一款[App Name]的UI。\n")
	case catalog.ModeInterior:
		b.WriteString("Generate a structured interior design rendering prompt in CHINESE strictly following this format.\n")
		b.WriteString("设计一个[Space Name]的室内效果图。\n")
	default:
		b.WriteString("Generate a structured photography prompt in CHINESE strictly following this format.\n")
		b.WriteString("拍摄一组[Series Name]的照片。\n")
	}

	b.WriteString("风格: [Style Keywords, Colors, Shapes, Background].\n")
	fmt.Fprintf(&b, "%s:\n", entry.Items)
	for i := 1; i <= entry.MaxItems; i++ {
		sep := ";"
		if i == entry.MaxItems {
			sep = "."
		}
		fmt.Fprintf(&b, "%d. [Name] ([Key element description])%s\n", i, sep)
	}
	b.WriteString("氛围: [Atmosphere Keywords].\n\n")

	fmt.Fprintf(&b, "Choose the number of numbered entries by complexity: simple utility %s → %d, "+
		"standard %s → %d, complex platform → %d. Never list more than %d or fewer than %d.",
		entry.Subject, entry.MinItems, entry.Subject, entry.MinItems+1, entry.MaxItems, entry.MaxItems, entry.MinItems)

	return b.String()
}

func implementationInstruction(entry catalog.Entry, req FinalRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Idea: %q\n", strings.TrimSpace(req.Idea))
	fmt.Fprintf(&b, "Selected Style: %s\n\n", strings.TrimSpace(req.Style))
	b.WriteString("Write a prompt, in English, for an AI front-end code generator that will build this " +
		"interface. Cover:\n")
	b.WriteString("- Tech stack: React with TypeScript and Tailwind CSS, responsive, mobile first.\n")
	b.WriteString("- Design tokens derived from the style: color palette (hex), typography, radius, spacing, shadows.\n")
	fmt.Fprintf(&b, "- The same %d to %d screens a designer would produce for this idea, each with its key components.\n",
		entry.MinItems, entry.MaxItems)
	b.WriteString("- Interaction states, empty states and accessibility (contrast, focus, labels).\n")
	b.WriteString("Return only the prompt text, without preamble.")

	return b.String()
}

// assetSpecification is the implementation text for asset mode.
const assetSpecification = `Technical specification:
- Canvas: 1024x1024 px, square, sRGB
- Subject centered with a 10% safe margin on every side
- Plain or simple gradient background, no text, no watermark
- Must remain legible at 48x48 px; avoid hairline details
- Deliverables: PNG master, plus 512, 256, 128, 64 and 32 px exports`

// genericImplementation is the implementation text for modes without a
// dedicated build target.
const genericImplementation = `Use the final prompt above directly with your image-generation tool.
Suggested settings: aspect ratio 16:9 for scenes or 4:5 for portraits, high detail, photorealistic rendering.
Iterate by adjusting the style and mood keywords rather than the structure.`
