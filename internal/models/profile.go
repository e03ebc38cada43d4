// internal/models/profile.go
package models

// Profile is the student profile record shared across workers. Every field is
// optional as far as scoring is concerned; an empty string or empty slice
// counts as absent. Skills and interests are stored as JSON arrays in the
// profiles table and keep their authored order.
type Profile struct {
	ID          string   `json:"id"`
	FullName    string   `json:"fullName"`
	University  string   `json:"university"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	Interests   []string `json:"interests"`
	Role        string   `json:"role"`
	LinkedinURL string   `json:"linkedinUrl"`
	TwitterURL  string   `json:"twitterUrl"`
	WebsiteURL  string   `json:"websiteUrl"`
	AvatarURL   string   `json:"avatarUrl"`
	IsOnboarded bool     `json:"isOnboarded"`
}

// Collaboration role vocabulary. Role compatibility scoring matches these
// exact strings; any other value earns no role bonus.
const (
	RoleLookingForCofounder = "Looking for a co-founder"
	RoleLookingForTeam      = "Looking for team members"
	RoleReadyToJoin         = "Ready to join as co-founder"
)
