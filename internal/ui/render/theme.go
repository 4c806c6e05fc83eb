package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background       tcell.Color
	Foreground       tcell.Color
	TitleFg          tcell.Color
	CatchphraseFg    tcell.Color
	CategoryFg       tcell.Color
	CategoryActiveBg tcell.Color
	CategoryActiveFg tcell.Color
	TileBg           tcell.Color
	TileFg           tcell.Color
	TileMutedFg      tcell.Color
	SelectionBg      tcell.Color
	SelectionFg      tcell.Color
	LightboxBg       tcell.Color
	CaptionFg        tcell.Color
	CounterFg        tcell.Color
	ErrorFg          tcell.Color
	NoticeBg         tcell.Color
	NoticeFg         tcell.Color
	HeartFg          tcell.Color
	FooterBg         tcell.Color
	FooterFg         tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:       tcell.ColorDefault,
		Foreground:       tcell.ColorDefault,
		TitleFg:          tcell.Color205, // rose
		CatchphraseFg:    tcell.Color218,
		CategoryFg:       tcell.ColorDefault,
		CategoryActiveBg: tcell.Color205,
		CategoryActiveFg: tcell.ColorWhite,
		TileBg:           tcell.Color236,
		TileFg:           tcell.Color255,
		TileMutedFg:      tcell.Color245,
		SelectionBg:      tcell.Color175,
		SelectionFg:      tcell.ColorBlack,
		LightboxBg:       tcell.ColorBlack,
		CaptionFg:        tcell.Color255,
		CounterFg:        tcell.Color250,
		ErrorFg:          tcell.Color203,
		NoticeBg:         tcell.Color205,
		NoticeFg:         tcell.ColorWhite,
		HeartFg:          tcell.Color205,
		FooterBg:         tcell.ColorDefault,
		FooterFg:         tcell.ColorDefault,
	}
}
