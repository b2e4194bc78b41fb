package entity

import "time"

type User struct {
	ID        int64
	Phone     string
	Name      string
	Bio       string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Skill struct {
	ID   int64
	Name string
}

// Profile is a user decorated with the relational data every profile
// response carries.
type Profile struct {
	User           User
	Skills         []Skill
	FollowersCount int64
	FollowingCount int64
}

// PublicProfile is a profile viewed by another user.
type PublicProfile struct {
	Profile
	IsFollowedByViewer bool
}

type Otp struct {
	Phone     string
	CodeHash  string
	ExpiresAt time.Time
}

// UpsertUser resolves a phone number to a user row, creating it on first login.
type UpsertUser struct {
	ID    int64
	Phone string
}

type UserSearchFilter struct {
	Query    string
	ViewerID int64
	Page     int32
	Size     int32
}
