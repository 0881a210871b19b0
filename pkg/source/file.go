package source

// File is a named source document held as runes, so spans index by
// character rather than by (possibly multi-byte) UTF-8 byte.
type File struct {
	name     string
	contents []rune
}

// NewFile constructs a source file from a name and its raw bytes.
func NewFile(name string, bytes []byte) *File {
	return &File{name: name, contents: []rune(string(bytes))}
}

// Name returns the file's name (usually a path, or a synthetic name for
// embedded/generated sources).
func (f *File) Name() string { return f.name }

// Contents returns the full rune slice backing this file.
func (f *File) Contents() []rune { return f.contents }

// Text returns the substring covered by span.
func (f *File) Text(span Span) string {
	start, end := span.start, span.end
	if end > len(f.contents) {
		end = len(f.contents)
	}

	if start > end {
		start = end
	}

	return string(f.contents[start:end])
}

// Line describes one physical line of a File.
type Line struct {
	file   *File
	span   Span
	number int
}

// Number returns the 1-based line number.
func (l Line) Number() int { return l.number }

// Span returns the span of this line (excluding its trailing newline).
func (l Line) Span() Span { return l.span }

// Text returns the textual contents of this line.
func (l Line) Text() string { return l.file.Text(l.span) }

// EnclosingLine returns the first physical line containing the start of
// span. If span starts beyond the end of the file, the last line is
// returned.
func (f *File) EnclosingLine(span Span) Line {
	number := 1
	lineStart := 0

	for i, r := range f.contents {
		if i == span.start {
			return Line{f, Span{lineStart, endOfLine(f.contents, i)}, number}
		}

		if r == '\n' {
			number++
			lineStart = i + 1
		}
	}

	return Line{f, Span{lineStart, len(f.contents)}, number}
}

func endOfLine(text []rune, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}
