package models

// Actor identifies the authenticated user acting on a request: a candidate
// or a company user, by their own table's id.
type Actor struct {
	Type SenderType
	ID   uint
}

func (a Actor) IsCandidate() bool { return a.Type == SenderCandidate }
func (a Actor) IsCompany() bool   { return a.Type == SenderCompany }
