package event_bus

const OrganizationDeletedType EventType = "organization.deleted"

// OrganizationDeleted is published after an organization has been removed from storage.
type OrganizationDeleted struct {
	ID      string
	OrgName string
}
