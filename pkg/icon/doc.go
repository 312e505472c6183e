// Package icon maps file descriptors to the glyphs shown in the file explorer.
//
// Resolution is a total function: every descriptor, including empty or
// malformed names, yields a glyph.
//
//	icon.Resolve(icon.FileDescriptor{Name: "plans", IsDir: true})  // "📁"
//	icon.Resolve(icon.FileDescriptor{Name: "Tower.IFC"})           // "🏗️"
//	icon.Resolve(icon.FileDescriptor{Name: "notes.unknown"})       // "📄"
//
// The extension is the text after the last ".", lower-cased. A name without a
// "." is taken whole as its extension, so "Makefile" gets the default glyph
// while a file literally named "zip" gets the archive glyph.
package icon
