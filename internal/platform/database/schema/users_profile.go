package schema

// UserProfileTable represents the 'users.profile' table
type UserProfileTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Role      string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// UserProfile is the schema definition for users.profile
var UserProfile = UserProfileTable{
	Table:     "users.profile",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Role:      "role",
	IsActive:  "isactive",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserProfileTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.Role, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
