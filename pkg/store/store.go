// Package store defines the persistence interfaces for Craft Plan entities.
package store

// Store is an interface for managing organizations, users, contacts,
// projects, and their grants.
type Store interface {
	UserStore
	OrgStore
	ContactStore
	ProjectStore
	StageStore
	ShareStore
	ProjectContactStore
	TemplateStore
	CostStore
	AccessTokenStore
	WebhookStore
	IdentityEventStore
}
