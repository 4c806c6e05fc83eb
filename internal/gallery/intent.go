package gallery

// Intent is a discrete navigation request.
type Intent interface {
	intent()
}

type Next struct{}
type Previous struct{}
type JumpFirst struct{}
type JumpLast struct{}

// JumpTo moves the cursor to Index when it is in range.
type JumpTo struct {
	Index int
}

// Open shows the lightbox at Index.
type Open struct {
	Index int
}

// Close hides the lightbox and keeps the cursor.
type Close struct{}

func (Next) intent()      {}
func (Previous) intent()  {}
func (JumpFirst) intent() {}
func (JumpLast) intent()  {}
func (JumpTo) intent()    {}
func (Open) intent()      {}
func (Close) intent()     {}
