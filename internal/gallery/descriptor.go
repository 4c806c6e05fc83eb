package gallery

// Descriptor identifies one displayable image. It is immutable once built.
type Descriptor struct {
	source  string
	altText string
	caption string
}

// NewDescriptor builds a descriptor from its three fields.
func NewDescriptor(source, altText, caption string) Descriptor {
	return Descriptor{source: source, altText: altText, caption: caption}
}

func (d Descriptor) Source() string  { return d.source }
func (d Descriptor) AltText() string { return d.altText }
func (d Descriptor) Caption() string { return d.caption }

// Item is a catalogued image together with the category used by filters.
type Item struct {
	Source   string
	AltText  string
	Caption  string
	Category string
}

// Descriptor projects the catalogued item onto its displayable fields.
func (it Item) Descriptor() Descriptor {
	return NewDescriptor(it.Source, it.AltText, it.Caption)
}
