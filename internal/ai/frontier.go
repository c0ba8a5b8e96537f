package ai

// Frontier returns the union of all cells referenced by the given
// constraints: the covered cells adjacent to at least one open
// numbered cell. An empty frontier means no local information is left
// and any further move is a blind pick.
func Frontier(constraints []*Constraint) PointSet {
	frontier := make(PointSet)
	for _, c := range constraints {
		for p := range c.Cells {
			frontier.Add(p)
		}
	}
	return frontier
}
