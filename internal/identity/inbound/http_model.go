package inbound

import (
	"encoding/json"
	"time"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
)

type RequestOtpRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type RequestOtpResponse struct {
	OtpForTesting string `json:"otp_for_testing,omitempty"`
}

func (RequestOtpResponse) Message() string {
	return "OTP sent successfully."
}

type LoginWithOtpRequest struct {
	PhoneNumber string `json:"phone_number"`
	Otp         string `json:"otp"`
}

type LoginWithOtpResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

func (LoginWithOtpResponse) Message() string {
	return "Login successful."
}

type SkillResponse struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID             int64           `json:"id,string"`
	PhoneNumber    string          `json:"phone_number"`
	Name           string          `json:"name"`
	Bio            string          `json:"bio"`
	AvatarURL      string          `json:"avatar_url"`
	Skills         []SkillResponse `json:"skills"`
	FollowersCount int64           `json:"followers_count"`
	FollowingCount int64           `json:"following_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

type PublicUserResponse struct {
	UserResponse
	IsFollowedByCurrentUser bool `json:"is_followed_by_current_user"`
}

type ProfileUpdateRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type ProfileSkillsRequest struct {
	SkillIDs []int64 `json:"skill_ids"`
}

// UserSearchResponse renders as a bare array, with pagination in the
// envelope meta.
type UserSearchResponse struct {
	Users []UserResponse `json:"-"`
	Total int64          `json:"-"`
	Page  int32          `json:"-"`
	Size  int32          `json:"-"`
}

func (r UserSearchResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Users)
}

func (r UserSearchResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.Total,
		"page":  r.Page,
		"size":  r.Size,
	}
}

type SkillsListResponse []SkillResponse

func newUserResponse(p entity.Profile) UserResponse {
	skills := make([]SkillResponse, 0, len(p.Skills))
	for _, skill := range p.Skills {
		skills = append(skills, SkillResponse{ID: skill.ID, Name: skill.Name})
	}

	return UserResponse{
		ID:             p.User.ID,
		PhoneNumber:    p.User.Phone,
		Name:           p.User.Name,
		Bio:            p.User.Bio,
		AvatarURL:      p.User.AvatarURL,
		Skills:         skills,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		CreatedAt:      p.User.CreatedAt,
	}
}
