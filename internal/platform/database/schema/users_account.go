package schema

// UserAccountTable represents the 'users.account' table
//
// Accounts are the identity-provider records: they own credentials only.
// All domain attributes (name, role, active flag) live on users.profile.
type UserAccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	PasswordHash: "passwordhash",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.PasswordHash, t.CreatedAt, t.UpdatedAt}
}
