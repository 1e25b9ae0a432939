package proto

// Identity is the profile an identity provider supplies for an
// authenticated principal. ExternalID is the provider's opaque id and is
// the only required field.
type Identity struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	AvatarURL  string
}
