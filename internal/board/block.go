package board

import "github.com/vovakirdan/blockbreaker/internal/core"

// BlockType is the matching category of a block.
// Two blocks match when their types are equal.
type BlockType uint8

// MaxPalette is the largest supported number of block types.
const MaxPalette = 8

// palette maps block types to display colors and glyphs.
var palette = [MaxPalette]struct {
	color core.Color
	glyph rune
}{
	{core.ColorBrightRed, '●'},
	{core.ColorBrightGreen, '■'},
	{core.ColorBrightBlue, '▲'},
	{core.ColorBrightYellow, '◆'},
	{core.ColorBrightMagenta, '★'},
	{core.ColorBrightCyan, '♥'},
	{core.ColorOrange, '♣'},
	{core.ColorBrightWhite, '♠'},
}

// Color returns the display color of the block type.
func (t BlockType) Color() core.Color {
	if int(t) >= len(palette) {
		return core.ColorDefault
	}
	return palette[t].color
}

// Glyph returns the rune used to draw the block type.
func (t BlockType) Glyph() rune {
	if int(t) >= len(palette) {
		return '?'
	}
	return palette[t].glyph
}

// Block is a single tile on the board.
// A block has no position of its own: where it is drawn is always derived
// from its grid coordinate plus any in-flight animation offset.
type Block struct {
	Type BlockType
	Size float64 // Edge length in world units
}
