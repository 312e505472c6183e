package icon

import "strings"

// FileDescriptor is the minimal description of an explorer entry.
type FileDescriptor struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
}

// Extension returns the lower-cased text after the last "." in name, or the
// whole lower-cased name when it has no ".".
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// Classify returns the category of a file. Directories and unmatched
// extensions are Other.
func Classify(fd FileDescriptor) Category {
	if fd.IsDir {
		return Other
	}
	if c, ok := byExtension[Extension(fd.Name)]; ok {
		return c
	}
	return Other
}

// Resolve returns the glyph for a file descriptor. Directories always get the
// folder glyph; their names are not inspected.
func Resolve(fd FileDescriptor) string {
	if fd.IsDir {
		return FolderGlyph
	}
	return Classify(fd).Glyph()
}
