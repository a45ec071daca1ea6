package layout

// Palette is the fixed list of block colors.
var Palette = [8]string{
	"#1abc9c",
	"#3498db",
	"#9b59b6",
	"#e67e22",
	"#e74c3c",
	"#34495e",
	"#f39c12",
	"#2ecc71",
}

// Color returns the color of a process.
func Color(pid int) string {
	n := len(Palette)
	return Palette[((pid%n)+n)%n]
}
