package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/peyvandhq/peyvand/internal/identity/usecase"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for authentication and profile workflows.
type HTTPEndpoint struct {
	uc uc
}

// RequestOtp issues a one-time login code for a phone number.
// @Summary Request OTP
// @Description Sends a one-time login code to the given Iranian mobile number via SMS.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RequestOtpRequest true "OTP request payload"
// @Success 200 {object} router.successResponse{data=RequestOtpResponse} "OTP issued"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "A request for this phone is already in flight"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/request [post]
func (h *HTTPEndpoint) RequestOtp(r *router.Request) (any, error) {
	var req RequestOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RequestOtp(r.Context(), usecase.RequestOtpInput{
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	return RequestOtpResponse{OtpForTesting: resp.Code}, nil
}

// LoginWithOtp verifies a one-time code and issues an access token.
// @Summary Login with OTP
// @Description Verifies the one-time code for the phone number, creating the account on first login, and returns a bearer token.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginWithOtpRequest true "OTP login payload"
// @Success 200 {object} router.successResponse{data=LoginWithOtpResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/login [post]
func (h *HTTPEndpoint) LoginWithOtp(r *router.Request) (any, error) {
	var req LoginWithOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginWithOtp(r.Context(), usecase.LoginWithOtpInput{
		PhoneNumber: req.PhoneNumber,
		Otp:         req.Otp,
	})
	if err != nil {
		return nil, err
	}

	return LoginWithOtpResponse{
		AccessToken: resp.AccessToken,
		TokenType:   "Bearer",
		User:        newUserResponse(resp.Profile),
	}, nil
}

// Profile returns the authenticated user's profile.
// @Summary Get profile
// @Tags Identity, Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=UserResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp.Profile), nil
}

// ProfileUpdate updates the authenticated user's name and bio.
// @Summary Update profile
// @Tags Identity, Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile payload"
// @Success 200 {object} router.successResponse{data=UserResponse} "Updated profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		Name: req.Name,
		Bio:  req.Bio,
	})
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp.Profile), nil
}

// ProfileSkills replaces the authenticated user's skill set.
// @Summary Replace skills
// @Tags Identity, Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProfileSkillsRequest true "Skill ids payload"
// @Success 200 {object} router.successResponse{data=UserResponse} "Updated profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/profile/skills [put]
func (h *HTTPEndpoint) ProfileSkills(r *router.Request) (any, error) {
	var req ProfileSkillsRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProfileSkills(r.Context(), usecase.ProfileSkillsInput{
		SkillIDs: req.SkillIDs,
	})
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp.Profile), nil
}

// ProfileUpdateAvatar replaces the authenticated user's avatar image.
// @Summary Upload avatar
// @Tags Identity, Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image (jpeg, png or webp)"
// @Success 204 "Avatar updated"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Unsupported or oversized image"
// @Router /api/v1/profile/avatar [put]
func (h *HTTPEndpoint) ProfileUpdateAvatar(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("avatar")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.ProfileUpdateAvatar(ctx, usecase.ProfileUpdateAvatarInput{
		File:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
}

// PublicProfile returns another user's profile.
// @Summary Get public profile
// @Tags Identity, Directory
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} router.successResponse{data=PublicUserResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/v1/users/{id} [get]
func (h *HTTPEndpoint) PublicProfile(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	resp, err := h.uc.PublicProfile(r.Context(), usecase.PublicProfileInput{UserID: userID})
	if err != nil {
		return nil, err
	}

	return PublicUserResponse{
		UserResponse:            newUserResponse(resp.Profile.Profile),
		IsFollowedByCurrentUser: resp.Profile.IsFollowedByViewer,
	}, nil
}

// UserSearch searches users by name or skill.
// @Summary Search users
// @Tags Identity, Directory
// @Security BearerAuth
// @Produce json
// @Param q query string false "Search term"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=[]UserResponse} "Matching users"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/users [get]
func (h *HTTPEndpoint) UserSearch(r *router.Request) (any, error) {
	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")

	resp, err := h.uc.UserSearch(r.Context(), usecase.UserSearchInput{
		Query: r.GetQuery("q"),
		Page:  page,
		Size:  size,
	})
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(resp.Users))
	for _, p := range resp.Users {
		users = append(users, newUserResponse(p))
	}

	return UserSearchResponse{
		Users: users,
		Total: resp.Total,
		Page:  resp.Page,
		Size:  resp.Size,
	}, nil
}

// SkillsList returns the skill catalog.
// @Summary List skills
// @Tags Identity, Directory
// @Produce json
// @Success 200 {object} router.successResponse{data=SkillsListResponse} "Skill catalog"
// @Router /api/v1/skills [get]
func (h *HTTPEndpoint) SkillsList(r *router.Request) (any, error) {
	resp, err := h.uc.SkillsList(r.Context())
	if err != nil {
		return nil, err
	}

	skills := make(SkillsListResponse, 0, len(resp.Skills))
	for _, skill := range resp.Skills {
		skills = append(skills, SkillResponse{ID: skill.ID, Name: skill.Name})
	}

	return skills, nil
}
