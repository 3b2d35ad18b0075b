package auth

// Staff is a restaurant employee allowed to move orders along.
type Staff struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
}
