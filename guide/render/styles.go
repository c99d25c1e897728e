package render

// RGB is a plain color triple for fpdf's Set*Color calls.
type RGB struct {
	R, G, B int
}

var (
	TitleColor       = RGB{26, 26, 26}    // #1a1a1a
	HeadingColor     = RGB{44, 62, 80}    // #2c3e50
	QuestionColor    = RGB{52, 73, 94}    // #34495e
	BodyColor        = RGB{44, 62, 80}    // #2c3e50
	TableHeaderFill  = RGB{52, 152, 219}  // #3498db
	TableHeaderText  = RGB{245, 245, 245} // whitesmoke
	TableRowFill     = RGB{245, 245, 220} // beige
	CodeBackground   = RGB{248, 248, 248} // #f8f8f8
	CodeBlockFill    = RGB{240, 240, 240} // #f0f0f0
	CodeBlockBorder  = RGB{204, 204, 204} // #cccccc
)

const (
	TitleSize    = 24.0
	HeadingSize  = 18.0
	QuestionSize = 14.0
	BodySize     = 11.0
	CodeSize     = 9.0
)
