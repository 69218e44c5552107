package circuit

// Selection is the pending end of a wire being drawn.
type Selection struct {
	pending *Endpoint
}

// Pending returns the pending endpoint, if any.
func (sel *Selection) Pending() (ep Endpoint, ok bool) {
	if sel.pending == nil {
		return
	}

	return *sel.pending, true
}

// Clear discards the pending endpoint.
func (sel *Selection) Clear() {
	sel.pending = nil
}

// Select picks a pin on the graph.
//
// With nothing pending, the pin becomes the pending endpoint and no wire
// is returned. Otherwise the selection is consumed: if either end no longer
// resolves the selection is simply cleared; if the pin classes cannot be
// joined ErrInvalidConnectionType is returned; else a wire is added to the
// graph and returned.
func (sel *Selection) Select(g *Graph, ep Endpoint) (wire *Wire, err error) {
	if sel.pending == nil {
		sel.pending = &ep
		return
	}

	from := *sel.pending
	sel.pending = nil

	a, err := g.Pin(from)
	if err != nil {
		err = nil
		return
	}
	b, err := g.Pin(ep)
	if err != nil {
		err = nil
		return
	}

	if !CanConnect(a, b) {
		err = ErrInvalidConnectionType
		return
	}

	added := g.AddWire(from, ep)
	wire = &added

	return
}
