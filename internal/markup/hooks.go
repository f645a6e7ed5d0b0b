package markup

// LinkTag is a hyperlink as seen by a Hooks implementation.
// Class and Rel are added to the rendered element when non-empty.
type LinkTag struct {
	Href   string
	Text   string
	Title  string
	Class  string
	Rel    string
	Target string
}

// ImageTag is an image as seen by a Hooks implementation.
type ImageTag struct {
	Src   string
	Alt   string
	Title string
	Class string
}

// Hooks rewrites links and images while a document is parsed.
// Implementations only see the tag they are given and must not block.
type Hooks interface {
	OnLink(tag LinkTag) LinkTag
	OnImage(tag ImageTag) ImageTag
}

// NopHooks returns every tag unchanged.
type NopHooks struct{}

func (NopHooks) OnLink(tag LinkTag) LinkTag { return tag }

func (NopHooks) OnImage(tag ImageTag) ImageTag { return tag }
