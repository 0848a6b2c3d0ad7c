package services

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page is an offset/limit window that has already been clamped.
type Page struct {
	Offset int
	Limit  int
}

// NewPage clamps offset to >= 0 and limit to [1, MaxPageLimit]; a limit below 1
// falls back to DefaultPageLimit.
func NewPage(offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Offset: offset, Limit: limit}
}
