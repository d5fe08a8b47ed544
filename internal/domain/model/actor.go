package model

// Role is assigned by the external identity provider and trusted as-is.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

// Actor is the authenticated caller of an operation. VendorID is populated
// only for vendor-role actors and scopes their access to own orders.
type Actor struct {
	ID       string
	Role     Role
	VendorID string
}
