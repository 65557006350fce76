package domain

// Role distinguishes shoppers from staff. There is no user hierarchy;
// operations check the capability implied by the role tag.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleEmployee
}

type User struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// CanManageInventory gates catalog mutation and stock-alert queries.
func (u User) CanManageInventory() bool {
	return u.Role == RoleEmployee
}
