package inbound

import (
	"context"

	"github.com/peyvandhq/peyvand/internal/identity/usecase"
	"github.com/peyvandhq/peyvand/internal/pkg/router"
)

type uc interface {
	RequestOtp(ctx context.Context, in usecase.RequestOtpInput) (*usecase.RequestOtpOutput, error)
	LoginWithOtp(ctx context.Context, in usecase.LoginWithOtpInput) (*usecase.LoginWithOtpOutput, error)

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*usecase.ProfileOutput, error)
	ProfileSkills(ctx context.Context, in usecase.ProfileSkillsInput) (*usecase.ProfileOutput, error)
	ProfileUpdateAvatar(ctx context.Context, in usecase.ProfileUpdateAvatarInput) error

	PublicProfile(ctx context.Context, in usecase.PublicProfileInput) (*usecase.PublicProfileOutput, error)
	UserSearch(ctx context.Context, in usecase.UserSearchInput) (*usecase.UserSearchOutput, error)
	SkillsList(ctx context.Context) (*usecase.SkillsListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Passwordless authentication
	r.POST("/api/v1/auth/otp/request", end.RequestOtp)
	r.POST("/api/v1/auth/otp/login", end.LoginWithOtp)

	// Own profile (need authenticated)
	r.GET("/api/v1/profile", end.Profile)
	r.PUT("/api/v1/profile", end.ProfileUpdate)
	r.PUT("/api/v1/profile/skills", end.ProfileSkills)
	r.PUT("/api/v1/profile/avatar", end.ProfileUpdateAvatar)

	// Directory (need authenticated)
	r.GET("/api/v1/users", end.UserSearch)
	r.GET("/api/v1/users/:id", end.PublicProfile)

	// Public catalog
	r.GET("/api/v1/skills", end.SkillsList)
}
