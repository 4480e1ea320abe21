package record

// Color is one of the fixed palette tags.
type Color string

const (
	ColorRed    Color = "#FF3448"
	ColorBlue   Color = "#01BBEE"
	ColorGreen  Color = "#02EC50"
	ColorOrange Color = "#FD8200"
)

// Palette is the order colors are offered in the wizards.
var Palette = []Color{ColorRed, ColorBlue, ColorGreen, ColorOrange}

// FilterPalette is the order colors are offered on list screens.
var FilterPalette = []Color{ColorRed, ColorBlue, ColorOrange, ColorGreen}

// Valid reports whether c belongs to the palette.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Name is a human label for the color.
func (c Color) Name() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorOrange:
		return "orange"
	default:
		return string(c)
	}
}

// Avatar is one of the preset teacher characters.
type Avatar string

const (
	AvatarBunny1 Avatar = "bunny1"
	AvatarBunny2 Avatar = "bunny2"
	AvatarBunny3 Avatar = "bunny3"
)

// Avatars is the preset avatar set.
var Avatars = []Avatar{AvatarBunny1, AvatarBunny2, AvatarBunny3}

// Valid reports whether a belongs to the preset set.
func (a Avatar) Valid() bool {
	for _, p := range Avatars {
		if a == p {
			return true
		}
	}
	return false
}

// Background is the tile color shown behind the avatar.
func (a Avatar) Background() string {
	switch a {
	case AvatarBunny1:
		return "#FF3448"
	case AvatarBunny2:
		return "#01BBEE"
	case AvatarBunny3:
		return "#8CD6FD"
	default:
		return ""
	}
}
