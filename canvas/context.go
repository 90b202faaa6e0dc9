package canvas

// Context holds the named colors and regions defined during one file
// run. It is an explicit value owned by the driver and passed into every
// drawing operation that needs lookups; nothing here is process-global,
// so independent runs never share state.
type Context struct {
	colors  map[string]Color
	regions map[string]*Region
}

// NewContext returns an empty drawing context.
func NewContext() *Context {
	return &Context{
		colors:  make(map[string]Color),
		regions: make(map[string]*Region),
	}
}

// AddColor registers or replaces a named color.
func (ctx *Context) AddColor(id string, c Color) {
	ctx.colors[id] = c
}

// Color looks up a named color.
func (ctx *Context) Color(id string) (Color, bool) {
	c, ok := ctx.colors[id]
	return c, ok
}

// AddRegion registers or replaces a named region.
func (ctx *Context) AddRegion(id string, r *Region) {
	ctx.regions[id] = r
}

// Region looks up a named region.
func (ctx *Context) Region(id string) (*Region, bool) {
	r, ok := ctx.regions[id]
	return r, ok
}

// Reset drops all definitions.
func (ctx *Context) Reset() {
	ctx.colors = make(map[string]Color)
	ctx.regions = make(map[string]*Region)
}
