package palette

// DefaultName is the palette used when none is selected.
const DefaultName = "vivid"

var builtins = []Palette{
	{Name: "vivid", Colors: []string{"#5135FF", "#FF5828", "#F69CFF", "#FFA50F"}, Background: "#5135FF"},
	{Name: "sunset", Colors: []string{"#FF6B35", "#F7C59F", "#EF476F", "#FFD166"}, Background: "#2E1F47"},
	{Name: "ocean", Colors: []string{"#0077B6", "#00B4D8", "#90E0EF", "#CAF0F8"}, Background: "#03045E"},
	{Name: "forest", Colors: []string{"#2D6A4F", "#52B788", "#B7E4C7", "#D8F3DC"}, Background: "#081C15"},
	{Name: "mono", Colors: []string{"#FFFFFF", "#ADB5BD", "#495057"}, Background: "#212529"},
}

// Builtin returns the registry of palettes shipped with ellipsegen.
func Builtin() *Registry {
	r, err := NewRegistry(builtins...)
	if err != nil {
		panic("palette: invalid builtin palettes: " + err.Error())
	}
	return r
}
