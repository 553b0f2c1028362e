package multifinder

// Report summarises the search of one base seed.
type Report struct {
	Base   int64
	Worker int
	Hits   uint
}

func (a Report) OrderBefore(b Report) bool {
	// Sort by hits
	if a.Hits != b.Hits {
		return a.Hits > b.Hits
	}
	// Then by base seed
	return a.Base < b.Base
}
