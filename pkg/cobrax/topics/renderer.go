package topics

// Renderer turns a topic's raw content into what help prints.
// ext is the topic file's extension, including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics verbatim.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
