package ball

// Ball implements the Body interface for each kind, giving the
// collision index and rules engine uniform access to shared circle
// state regardless of kind.

func (f *Food) Ball() *Base  { return &f.Base }
func (s *Spore) Ball() *Base { return &s.Base }
func (t *Thorn) Ball() *Base { return &t.Base }
func (c *Clone) Ball() *Base { return &c.Base }
