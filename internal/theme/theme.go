// Package theme holds the design tokens shared by every email template.
//
// Values are email-safe: hex colors, pixel sizes and font stacks that survive
// clients which ignore webfonts and CSS variables. Template authors depend on
// the token names staying stable across releases, so fields are only ever
// added, never renamed.
package theme

import "strings"

// Tokens is the full token tree. Templates reach it through the "theme"
// global under the dotted names' segments, e.g. {{ .theme.colors.text }} or
// {{ index .theme.spacing "16" }}; see Tree.
type Tokens struct {
	Colors     Colors
	Type       Typography
	Spacing    map[string]string
	Radii      Radii
	Layout     Layout
	Components Components
}

// Colors holds the paper/newsprint palette and its semantic aliases.
type Colors struct {
	PaperBg        string
	PaperAged      string
	PaperDark      string
	Newsprint      string
	NewsprintLight string
	NewsprintRed   string

	Background    string
	Surface       string
	Text          string
	MutedText     string
	Border        string
	Divider       string
	Link          string
	LinkHover     string
	CalloutBg     string
	CalloutBorder string
}

// Typography holds font stacks, the size scale and line heights.
type Typography struct {
	FontBody    string
	FontHeading string
	FontMono    string
	Sizes       Sizes
	LineHeight  LineHeight
}

// Sizes is the font-size scale, body sizes first, then headings.
type Sizes struct {
	XS   string
	SM   string
	Base string
	LG   string
	XL   string
	H1   string
	H2   string
	H3   string
}

// LineHeight holds unitless line-height multipliers.
type LineHeight struct {
	Tight  string
	Normal string
}

// Radii are border radii for buttons, badges and callouts.
type Radii struct {
	SM string
	MD string
}

// Layout fixes the email container width and its side gutter.
type Layout struct {
	ContainerWidth string
	Gutter         string
}

// Components groups the tokens of composite elements.
type Components struct {
	Button ButtonTokens
	Badge  BadgeTokens
}

// ButtonTokens style the call-to-action button (PDF links).
type ButtonTokens struct {
	Bg      string
	Text    string
	BgHover string
}

// BadgeTokens style the importance badge on article cards.
type BadgeTokens struct {
	Bg     string
	Text   string
	Border string
}

// defaultTokens is the single process-wide instance. It never leaves the
// package; Default hands out copies.
var defaultTokens = &Tokens{
	Colors: Colors{
		PaperBg:        "#F5F2E8",
		PaperAged:      "#E8E1D1",
		PaperDark:      "#D3CAB4",
		Newsprint:      "#1A1F2C",
		NewsprintLight: "#333333",
		NewsprintRed:   "#ea384c",

		Background:    "#F5F2E8",
		Surface:       "#FFFFFF",
		Text:          "#1A1F2C",
		MutedText:     "#666666",
		Border:        "#D3CAB4",
		Divider:       "#E8E1D1",
		Link:          "#1A1F2C",
		LinkHover:     "#ea384c",
		CalloutBg:     "#F8F6F0",
		CalloutBorder: "#D3CAB4",
	},
	Type: Typography{
		FontBody:    "Georgia, 'Times New Roman', serif",
		FontHeading: "'Playfair Display', Georgia, 'Times New Roman', serif",
		FontMono:    "'Courier New', Courier, monospace",
		Sizes: Sizes{
			XS:   "12px",
			SM:   "14px",
			Base: "16px",
			LG:   "18px",
			XL:   "20px",
			H1:   "32px",
			H2:   "18px",
			H3:   "16px",
		},
		LineHeight: LineHeight{
			Tight:  "1.2",
			Normal: "1.6",
		},
	},
	Spacing: map[string]string{
		"2":  "2px",
		"4":  "4px",
		"6":  "6px",
		"8":  "8px",
		"10": "10px",
		"12": "12px",
		"16": "16px",
		"20": "20px",
		"24": "24px",
		"28": "28px",
		"32": "32px",
		"40": "40px",
	},
	// Small radii only; many clients render large ones poorly.
	Radii: Radii{
		SM: "2px",
		MD: "4px",
	},
	Layout: Layout{
		ContainerWidth: "600px",
		Gutter:         "20px",
	},
	Components: Components{
		Button: ButtonTokens{
			Bg:      "#1A1F2C",
			Text:    "#F5F2E8",
			BgHover: "#333333",
		},
		Badge: BadgeTokens{
			Bg:     "#F0EBDD",
			Text:   "#1A1F2C",
			Border: "#D3CAB4",
		},
	},
}

// Default returns a copy of the token set. Changing the copy never affects
// other callers or templates.
func Default() *Tokens {
	return defaultTokens.Clone()
}

// Clone returns a deep copy of t.
func (t *Tokens) Clone() *Tokens {
	c := *t
	c.Spacing = make(map[string]string, len(t.Spacing))
	for k, v := range t.Spacing {
		c.Spacing[k] = v
	}
	return &c
}

// Tree returns the tokens as nested maps keyed by the segments of their
// dotted names, so "type.sizes.h1" is Tree()["type"]["sizes"]["h1"]. Leaves
// are strings. A fresh tree is built on each call.
func (t *Tokens) Tree() map[string]any {
	root := make(map[string]any)
	for name, value := range t.Flatten() {
		parts := strings.Split(name, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return root
}

// Flatten returns every token keyed by its stable dotted name, for example
// "colors.text" or "type.sizes.h1". A fresh map is built on each call.
func (t *Tokens) Flatten() map[string]string {
	out := map[string]string{
		"colors.paper_bg":        t.Colors.PaperBg,
		"colors.paper_aged":      t.Colors.PaperAged,
		"colors.paper_dark":      t.Colors.PaperDark,
		"colors.newsprint":       t.Colors.Newsprint,
		"colors.newsprint_light": t.Colors.NewsprintLight,
		"colors.newsprint_red":   t.Colors.NewsprintRed,
		"colors.background":      t.Colors.Background,
		"colors.surface":         t.Colors.Surface,
		"colors.text":            t.Colors.Text,
		"colors.muted_text":      t.Colors.MutedText,
		"colors.border":          t.Colors.Border,
		"colors.divider":         t.Colors.Divider,
		"colors.link":            t.Colors.Link,
		"colors.link_hover":      t.Colors.LinkHover,
		"colors.callout_bg":      t.Colors.CalloutBg,
		"colors.callout_border":  t.Colors.CalloutBorder,

		"type.font_body":          t.Type.FontBody,
		"type.font_heading":       t.Type.FontHeading,
		"type.font_mono":          t.Type.FontMono,
		"type.sizes.xs":           t.Type.Sizes.XS,
		"type.sizes.sm":           t.Type.Sizes.SM,
		"type.sizes.base":         t.Type.Sizes.Base,
		"type.sizes.lg":           t.Type.Sizes.LG,
		"type.sizes.xl":           t.Type.Sizes.XL,
		"type.sizes.h1":           t.Type.Sizes.H1,
		"type.sizes.h2":           t.Type.Sizes.H2,
		"type.sizes.h3":           t.Type.Sizes.H3,
		"type.line_height.tight":  t.Type.LineHeight.Tight,
		"type.line_height.normal": t.Type.LineHeight.Normal,

		"radii.sm": t.Radii.SM,
		"radii.md": t.Radii.MD,

		"layout.container_width": t.Layout.ContainerWidth,
		"layout.gutter":          t.Layout.Gutter,

		"components.button.bg":       t.Components.Button.Bg,
		"components.button.text":     t.Components.Button.Text,
		"components.button.bg_hover": t.Components.Button.BgHover,
		"components.badge.bg":        t.Components.Badge.Bg,
		"components.badge.text":      t.Components.Badge.Text,
		"components.badge.border":    t.Components.Badge.Border,
	}
	for k, v := range t.Spacing {
		out["spacing."+k] = v
	}
	return out
}

// Lookup resolves a dotted token name.
func (t *Tokens) Lookup(name string) (string, bool) {
	v, ok := t.Flatten()[name]
	return v, ok
}
