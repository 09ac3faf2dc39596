package subtitle

import "stitch/internal/manifest"

// ApplyOverrides merges a manifest style block over the default parameters.
// A nil block yields the defaults; set fields replace their counterpart one
// by one so partial overrides keep the rest of the baseline.
func ApplyOverrides(block *manifest.StyleBlock) StyleParams {
	params := DefaultStyleParams()
	if block == nil {
		return params
	}
	if block.FontName != nil {
		params.FontName = *block.FontName
	}
	if block.FontSize != nil {
		params.FontSize = *block.FontSize
	}
	if block.PrimaryColour != nil {
		params.PrimaryColour = *block.PrimaryColour
	}
	if block.SecondaryColour != nil {
		params.SecondaryColour = *block.SecondaryColour
	}
	if block.OutlineColour != nil {
		params.OutlineColour = *block.OutlineColour
	}
	if block.BackColour != nil {
		params.BackColour = *block.BackColour
	}
	if block.Bold != nil {
		params.Bold = *block.Bold
	}
	if block.Italic != nil {
		params.Italic = *block.Italic
	}
	if block.Underline != nil {
		params.Underline = *block.Underline
	}
	if block.StrikeOut != nil {
		params.StrikeOut = *block.StrikeOut
	}
	if block.ScaleX != nil {
		params.ScaleX = *block.ScaleX
	}
	if block.ScaleY != nil {
		params.ScaleY = *block.ScaleY
	}
	if block.Spacing != nil {
		params.Spacing = *block.Spacing
	}
	if block.Angle != nil {
		params.Angle = *block.Angle
	}
	if block.BorderStyle != nil {
		params.BorderStyle = *block.BorderStyle
	}
	if block.Outline != nil {
		params.Outline = *block.Outline
	}
	if block.Shadow != nil {
		params.Shadow = *block.Shadow
	}
	if block.Alignment != nil {
		params.Alignment = *block.Alignment
	}
	if block.MarginL != nil {
		params.MarginL = *block.MarginL
	}
	if block.MarginR != nil {
		params.MarginR = *block.MarginR
	}
	if block.MarginV != nil {
		params.MarginV = *block.MarginV
	}
	if block.Encoding != nil {
		params.Encoding = *block.Encoding
	}
	return params
}
