package domain

// Role identifies the actor group that owns a workflow stage.
type Role string

const (
	RoleKAM      Role = "KAM"
	RoleManager  Role = "MANAGER"
	RoleMKTOps   Role = "MKTOPS"
	RoleSalesOps Role = "SALESOPS"
)
