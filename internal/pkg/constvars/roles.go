package constvars

const (
	RoleDoctor  = "DOCTOR"
	RoleStaff   = "STAFF"
	RolePatient = "PATIENT"
)

const (
	JWTClaimRealmAccess = "realm_access"
	JWTClaimRoles       = "roles"
)
