package docx

// HeaderPart is a header story (w:hdr root)
type HeaderPart struct {
	*StoryPart
}

func newHeaderPart(base *Part, o owner) *HeaderPart {
	return &HeaderPart{StoryPart: newStoryPart(base, o)}
}

// FooterPart is a footer story (w:ftr root)
type FooterPart struct {
	*StoryPart
}

func newFooterPart(base *Part, o owner) *FooterPart {
	return &FooterPart{StoryPart: newStoryPart(base, o)}
}
