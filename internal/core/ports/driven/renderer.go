package driven

// PreviewRenderer converts markdown source into preview HTML.
type PreviewRenderer interface {
	Render(markdown string) (string, error)
}
