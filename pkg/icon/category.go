package icon

// Category is a closed set of file kinds, each with one glyph and the
// extensions that select it.
type Category int

// Categories in match order. Other must stay last.
const (
	Model Category = iota
	Drawing
	Spreadsheet
	PDF
	WordDocument
	Image
	Archive
	SourceCode
	PlainText
	Other

	numCategories
)

// Folder and default glyphs.
const (
	FolderGlyph  = "📁"
	DefaultGlyph = "📄"
)

type categoryInfo struct {
	name       string
	glyph      string
	extensions []string
}

// categoryTable is indexed by Category.
var categoryTable = [...]categoryInfo{
	Model:        {"model", "🏗️", []string{"ifc"}},
	Drawing:      {"drawing", "📐", []string{"dwg"}},
	Spreadsheet:  {"spreadsheet", "📊", []string{"xlsx", "xls", "csv"}},
	PDF:          {"pdf", "📕", []string{"pdf"}},
	WordDocument: {"document", "📝", []string{"doc", "docx"}},
	Image:        {"image", "🖼️", []string{"jpg", "jpeg", "png", "gif", "bmp", "svg"}},
	Archive:      {"archive", "🗜️", []string{"zip", "rar", "7z"}},
	SourceCode:   {"code", "💻", []string{"js", "ts", "py", "php", "cpp", "c", "cs", "java", "json"}},
	PlainText:    {"text", DefaultGlyph, []string{"txt", "md"}},
	Other:        {"other", DefaultGlyph, nil},
}

// Adding a Category without a table row (or the reverse) fails to compile.
var (
	_ [len(categoryTable) - int(numCategories)]struct{}
	_ [int(numCategories) - len(categoryTable)]struct{}
)

// byExtension is built once from categoryTable; the first category listing an
// extension owns it.
var byExtension = func() map[string]Category {
	m := make(map[string]Category)
	for c := Category(0); c < numCategories; c++ {
		for _, ext := range categoryTable[c].extensions {
			if _, taken := m[ext]; !taken {
				m[ext] = c
			}
		}
	}
	return m
}()

// Glyph returns the category's glyph. Out-of-range values get the default glyph.
func (c Category) Glyph() string {
	if !c.valid() {
		return DefaultGlyph
	}
	return categoryTable[c].glyph
}

// Extensions returns a copy of the extensions that select the category.
func (c Category) Extensions() []string {
	if !c.valid() {
		return nil
	}
	exts := categoryTable[c].extensions
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// String returns the category's short name.
func (c Category) String() string {
	if !c.valid() {
		return "other"
	}
	return categoryTable[c].name
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c Category) valid() bool {
	return c >= 0 && c < numCategories
}

// Categories returns every category in match order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}
