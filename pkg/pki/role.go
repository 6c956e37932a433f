package pki

// Role identifies which of the four ISO 15118 trust-anchor sets a chain
// must be validated against (spec §4.7). Each role keeps its own anchor
// pool since, e.g., a valid MO root says nothing about a V2G chain.
type Role uint8

const (
	RoleV2G Role = iota
	RoleMO
	RoleOEM
	RoleContract
)

func (r Role) String() string {
	switch r {
	case RoleV2G:
		return "V2G"
	case RoleMO:
		return "MO"
	case RoleOEM:
		return "OEM"
	case RoleContract:
		return "Contract"
	default:
		return "unknown"
	}
}
