package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

func TestProfile_RequiresAuth(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.Profile(context.Background())

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeUnauthorized {
		t.Fatalf("Profile() error = %v, want unauthorized", err)
	}
}

func TestProfileUpdate(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.repo.users["+989123456789"] = &entity.User{ID: 42, Phone: "+989123456789"}

	out, err := uc.ProfileUpdate(authContext(42, "+989123456789"), ProfileUpdateInput{
		Name: "  Sara Ahmadi  ",
		Bio:  "Backend engineer",
	})
	if err != nil {
		t.Fatalf("ProfileUpdate() error = %v", err)
	}

	if out.Profile.User.Name != "Sara Ahmadi" {
		t.Fatalf("ProfileUpdate() name = %q, want trimmed", out.Profile.User.Name)
	}
	if out.Profile.User.Bio != "Backend engineer" {
		t.Fatalf("ProfileUpdate() bio = %q", out.Profile.User.Bio)
	}
}

func TestProfileUpdate_NameRequired(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.repo.users["+989123456789"] = &entity.User{ID: 42, Phone: "+989123456789"}

	_, err := uc.ProfileUpdate(authContext(42, "+989123456789"), ProfileUpdateInput{Name: "   "})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("ProfileUpdate() error = %v, want invalid input", err)
	}
}

func TestProfileSkills_UnknownSkillRejected(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.repo.users["+989123456789"] = &entity.User{ID: 42, Phone: "+989123456789"}
	deps.repo.skillCount = 1 // repo only resolves one of the two ids

	_, err := uc.ProfileSkills(authContext(42, "+989123456789"), ProfileSkillsInput{SkillIDs: []int64{1, 999}})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("ProfileSkills() error = %v, want invalid input", err)
	}
}

func TestProfileSkills_DuplicatesCollapsed(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.repo.users["+989123456789"] = &entity.User{ID: 42, Phone: "+989123456789"}
	deps.repo.skillCount = 1

	if _, err := uc.ProfileSkills(authContext(42, "+989123456789"), ProfileSkillsInput{SkillIDs: []int64{5, 5, 5}}); err != nil {
		t.Fatalf("ProfileSkills() error = %v", err)
	}
}

func TestPublicProfile_NotFound(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.PublicProfile(authContext(42, "+989123456789"), PublicProfileInput{UserID: 77})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("PublicProfile() error = %v, want not found", err)
	}
}

func TestUserSearch_EmptyQuery(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.repo.searchOut = []entity.Profile{{User: entity.User{ID: 1}}}

	out, err := uc.UserSearch(authContext(42, "+989123456789"), UserSearchInput{Query: "   "})
	if err != nil {
		t.Fatalf("UserSearch() error = %v", err)
	}

	if len(out.Users) != 0 || out.Total != 0 {
		t.Fatalf("UserSearch() with empty query = %+v, want empty page", out)
	}
}

func TestUserSearch_ClampsPageSize(t *testing.T) {
	uc, _ := newTestUsecase(t)

	out, err := uc.UserSearch(authContext(42, "+989123456789"), UserSearchInput{
		Query: "go",
		Page:  -3,
		Size:  500,
	})
	if err != nil {
		t.Fatalf("UserSearch() error = %v", err)
	}

	if out.Page != 1 || out.Size != searchMaxPageSize {
		t.Fatalf("UserSearch() page=%d size=%d, want 1 and %d", out.Page, out.Size, searchMaxPageSize)
	}
}

func TestSkillsList(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.repo.skills = []entity.Skill{{ID: 1, Name: "DevOps"}, {ID: 2, Name: "SEO"}}

	out, err := uc.SkillsList(context.Background())
	if err != nil {
		t.Fatalf("SkillsList() error = %v", err)
	}
	if len(out.Skills) != 2 {
		t.Fatalf("SkillsList() returned %d skills, want 2", len(out.Skills))
	}
}
