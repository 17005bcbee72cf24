package topics

// Renderer formats topic content for terminal display. The format argument
// is the topic file's extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer is the default renderer that returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
