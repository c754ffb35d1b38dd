package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/shared"
)

// CompanyService manages listings: public reads, owner edits and the admin
// back office.
type CompanyService struct {
	companies directory.CompanyRepository
	owners    directory.CompanyOwnerRepository
	logger    *zap.Logger
}

// NewCompanyService creates the company service
func NewCompanyService(
	companies directory.CompanyRepository,
	owners directory.CompanyOwnerRepository,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{companies: companies, owners: owners, logger: logger}
}

// GetBySlug returns one listing. Inactive companies are only visible to
// admins and their own members.
func (s *CompanyService) GetBySlug(ctx context.Context, companySlug string, actor *Actor) (*CompanyView, error) {
	company, err := s.companies.FindBySlug(ctx, companySlug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !company.IsActive {
		if actor == nil {
			return nil, shared.ErrNotFound
		}
		if !actor.IsAdmin() {
			if _, err := s.owners.FindByCompanyAndUser(ctx, company.ID, actor.UserID); err != nil {
				return nil, shared.ErrNotFound
			}
		}
	}
	view := NewCompanyView(company)
	return &view, nil
}

// Get returns one listing by id for dashboard and admin screens
func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*CompanyView, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	view := NewCompanyView(company)
	return &view, nil
}

// Create adds a listing directly, bypassing the request queue. Admin only.
func (s *CompanyService) Create(ctx context.Context, actor Actor, input CreateCompanyInput) (*CompanyView, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	company, err := directory.NewCompany(directory.NewCompanyInput{
		Name:       input.Name,
		CategoryID: input.CategoryID,
		CountryID:  input.CountryID,
		CityID:     input.CityID,
	})
	if err != nil {
		return nil, err
	}
	company.Description = input.Description
	company.SubCategoryID = input.SubCategoryID
	company.SubAreaID = input.SubAreaID
	company.Phone = input.Phone
	company.Email = input.Email
	company.Website = input.Website
	company.Address = input.Address
	company.Latitude = input.Latitude
	company.Longitude = input.Longitude

	uniqueSlug, err := s.ensureUniqueSlug(ctx, company.Slug)
	if err != nil {
		return nil, err
	}
	company.Slug = uniqueSlug

	if err := s.companies.Save(ctx, company); err != nil {
		s.logger.Error("Failed to save company", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create company")
	}

	s.logger.Info("Company created",
		zap.String("company_id", company.ID.String()),
		zap.String("slug", company.Slug))
	view := NewCompanyView(company)
	return &view, nil
}

// Update applies profile edits from a member with profile:edit or an admin
func (s *CompanyService) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateCompanyInput) (*CompanyView, error) {
	if _, err := requirePermission(ctx, s.owners, actor, id, directory.PermEditProfile); err != nil {
		return nil, err
	}

	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if input.Name != nil {
		if err := company.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.CategoryID != nil {
		company.CategoryID = *input.CategoryID
	}
	if input.SubCategoryID != nil {
		company.SubCategoryID = input.SubCategoryID
	}
	if input.CityID != nil {
		company.CityID = *input.CityID
	}
	if input.SubAreaID != nil {
		company.SubAreaID = input.SubAreaID
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}
	if input.Email != nil {
		company.Email = *input.Email
	}
	if input.Website != nil {
		company.Website = *input.Website
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.Latitude != nil {
		company.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		company.Longitude = input.Longitude
	}
	if input.Services != nil {
		company.Services = *input.Services
	}
	company.Touch()

	if err := s.companies.Save(ctx, company); err != nil {
		s.logger.Error("Failed to update company", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update company")
	}

	view := NewCompanyView(company)
	return &view, nil
}

// Moderate toggles the verified, featured and active flags. Admin only.
func (s *CompanyService) Moderate(ctx context.Context, actor Actor, id uuid.UUID, input ModerateCompanyInput) (*CompanyView, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if input.IsVerified != nil {
		company.SetVerified(*input.IsVerified)
	}
	if input.IsFeatured != nil {
		company.SetFeatured(*input.IsFeatured)
	}
	if input.IsActive != nil {
		company.SetActive(*input.IsActive)
	}

	if err := s.companies.Save(ctx, company); err != nil {
		s.logger.Error("Failed to moderate company", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update company")
	}

	s.logger.Info("Company moderated",
		zap.String("company_id", company.ID.String()),
		zap.Bool("is_active", company.IsActive),
		zap.Bool("is_verified", company.IsVerified),
		zap.Bool("is_featured", company.IsFeatured))
	view := NewCompanyView(company)
	return &view, nil
}

// SetImages replaces logo, cover or gallery entries for a company
func (s *CompanyService) SetImages(ctx context.Context, actor Actor, id uuid.UUID, logo, cover *string, gallery *[]string) (*CompanyView, error) {
	if _, err := requirePermission(ctx, s.owners, actor, id, directory.PermManageImages); err != nil {
		return nil, err
	}

	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if logo != nil {
		company.LogoImage = *logo
	}
	if cover != nil {
		company.CoverImage = *cover
	}
	if gallery != nil {
		if len(*gallery) > 20 {
			return nil, shared.NewDomainError("INVALID_GALLERY", "Gallery is limited to 20 images")
		}
		company.Gallery = *gallery
	}
	company.Touch()

	if err := s.companies.Save(ctx, company); err != nil {
		s.logger.Error("Failed to update company images", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update images")
	}
	view := NewCompanyView(company)
	return &view, nil
}

// Delete removes a listing permanently. Admin only; owners can only
// deactivate through Moderate.
func (s *CompanyService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		if err == shared.ErrNotFound {
			return err
		}
		s.logger.Error("Failed to delete company", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete company")
	}
	s.logger.Info("Company deleted", zap.String("company_id", id.String()))
	return nil
}

// ListMine returns the companies the actor belongs to
func (s *CompanyService) ListMine(ctx context.Context, actor Actor) ([]CompanyView, error) {
	memberships, err := s.owners.FindByUser(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Failed to list memberships", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list companies")
	}

	views := make([]CompanyView, 0, len(memberships))
	for _, m := range memberships {
		company, err := s.companies.FindByID(ctx, m.CompanyID)
		if err != nil {
			continue
		}
		views = append(views, NewCompanyView(company))
	}
	return views, nil
}

// ensureUniqueSlug appends a numeric suffix until the slug is free
func (s *CompanyService) ensureUniqueSlug(ctx context.Context, base string) (string, error) {
	base = slug.Make(base)
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.companies.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to check slug")
		}
		if !exists {
			return candidate, nil
		}
		if i > 50 {
			return "", shared.NewDomainError("SLUG_EXHAUSTED", "Could not derive a unique slug")
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
