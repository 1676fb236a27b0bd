package ball

// IDGen allocates stable, monotonically increasing 64-bit identities.
// Each manager owns one, so identities never collide within a manager's
// own kind even though ids are not globally unique across kinds.
type IDGen struct {
	next uint64
}

// Next returns the next identity, starting at 1 so the zero value is
// never a valid id.
func (g *IDGen) Next() uint64 {
	g.next++
	return g.next
}

// Reset rewinds the generator back to its initial state, used by
// Server.Reset so a fresh match reassigns ids starting at 1 again.
func (g *IDGen) Reset() {
	g.next = 0
}
