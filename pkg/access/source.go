package access

// Source identifies which grant path produced a resolved level.
type Source int

const (
	// SourceNone means no grant path matched.
	SourceNone Source = iota

	// SourceOwnership means the user is a member of the owning organization.
	SourceOwnership

	// SourceShare means access came from an accepted organization share.
	SourceShare

	// SourceContact means access came from a per-contact grant.
	SourceContact
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceOwnership:
		return "ownership"
	case SourceShare:
		return "share"
	case SourceContact:
		return "contact"
	default:
		return "none"
	}
}
