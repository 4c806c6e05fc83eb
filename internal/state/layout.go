package state

// Grid geometry shared by the reducer (selection scrolling) and the renderer.
const (
	TileWidth  = 22
	TileHeight = 3
	TileGap    = 2
	// RowGap separates tile rows vertically.
	RowGap = 1

	// HeaderRows holds the title, catchphrase and category bar.
	HeaderRows = 3
	// FooterRows holds the status line and key hints.
	FooterRows = 2
)

// GridColumns returns how many tiles fit side by side in width columns.
func GridColumns(width int) int {
	cols := width / (TileWidth + TileGap)
	if cols < 1 {
		return 1
	}
	return cols
}

// GridVisibleRows returns how many tile rows fit in a screen of height rows.
func GridVisibleRows(height int) int {
	rows := (height - HeaderRows - FooterRows) / (TileHeight + RowGap)
	if rows < 1 {
		return 1
	}
	return rows
}
