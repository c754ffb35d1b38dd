package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/morabaat/backend/internal/domain/directory"
)

// CompanyView is the public API shape of a listing
type CompanyView struct {
	ID            uuid.UUID       `json:"id"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    uuid.UUID       `json:"category_id"`
	SubCategoryID *uuid.UUID      `json:"sub_category_id,omitempty"`
	CountryID     uuid.UUID       `json:"country_id"`
	CityID        uuid.UUID       `json:"city_id"`
	SubAreaID     *uuid.UUID      `json:"sub_area_id,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Website       string          `json:"website,omitempty"`
	Address       string          `json:"address,omitempty"`
	Latitude      *float64        `json:"latitude,omitempty"`
	Longitude     *float64        `json:"longitude,omitempty"`
	LogoImage     string          `json:"logo_image,omitempty"`
	CoverImage    string          `json:"cover_image,omitempty"`
	Gallery       []string        `json:"gallery,omitempty"`
	Services      []string        `json:"services,omitempty"`
	Rating        decimal.Decimal `json:"rating"`
	ReviewsCount  int             `json:"reviews_count"`
	IsActive      bool            `json:"is_active"`
	IsVerified    bool            `json:"is_verified"`
	IsFeatured    bool            `json:"is_featured"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewCompanyView maps a domain company to its API shape
func NewCompanyView(c *directory.Company) CompanyView {
	return CompanyView{
		ID:            c.ID,
		Slug:          c.Slug,
		Name:          c.Name,
		Description:   c.Description,
		CategoryID:    c.CategoryID,
		SubCategoryID: c.SubCategoryID,
		CountryID:     c.CountryID,
		CityID:        c.CityID,
		SubAreaID:     c.SubAreaID,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		Address:       c.Address,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		LogoImage:     c.LogoImage,
		CoverImage:    c.CoverImage,
		Gallery:       c.Gallery,
		Services:      c.Services,
		Rating:        c.Rating,
		ReviewsCount:  c.ReviewsCount,
		IsActive:      c.IsActive,
		IsVerified:    c.IsVerified,
		IsFeatured:    c.IsFeatured,
		CreatedAt:     c.CreatedAt,
	}
}

// CreateCompanyInput is the admin-side create payload
type CreateCompanyInput struct {
	Name          string     `json:"name" binding:"required,min=2,max=200"`
	Description   string     `json:"description" binding:"omitempty,max=5000"`
	CategoryID    uuid.UUID  `json:"category_id" binding:"required"`
	SubCategoryID *uuid.UUID `json:"sub_category_id"`
	CountryID     uuid.UUID  `json:"country_id" binding:"required"`
	CityID        uuid.UUID  `json:"city_id" binding:"required"`
	SubAreaID     *uuid.UUID `json:"sub_area_id"`
	Phone         string     `json:"phone" binding:"omitempty,max=50"`
	Email         string     `json:"email" binding:"omitempty,email"`
	Website       string     `json:"website" binding:"omitempty,url,max=500"`
	Address       string     `json:"address" binding:"omitempty,max=500"`
	Latitude      *float64   `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude     *float64   `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

// UpdateCompanyInput carries optional edits; nil fields stay untouched
type UpdateCompanyInput struct {
	Name          *string    `json:"name" binding:"omitempty,min=2,max=200"`
	Description   *string    `json:"description" binding:"omitempty,max=5000"`
	CategoryID    *uuid.UUID `json:"category_id"`
	SubCategoryID *uuid.UUID `json:"sub_category_id"`
	CityID        *uuid.UUID `json:"city_id"`
	SubAreaID     *uuid.UUID `json:"sub_area_id"`
	Phone         *string    `json:"phone" binding:"omitempty,max=50"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	Website       *string    `json:"website" binding:"omitempty,url,max=500"`
	Address       *string    `json:"address" binding:"omitempty,max=500"`
	Latitude      *float64   `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude     *float64   `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Services      *[]string  `json:"services" binding:"omitempty,max=50"`
}

// ModerateCompanyInput toggles the admin-only flags
type ModerateCompanyInput struct {
	IsVerified *bool `json:"is_verified"`
	IsFeatured *bool `json:"is_featured"`
	IsActive   *bool `json:"is_active"`
}

// SearchInput is the query-string shape of the public search
type SearchInput struct {
	Query           string   `form:"q" binding:"omitempty,max=200"`
	Country         string   `form:"country" binding:"omitempty,max=5"`
	City            string   `form:"city" binding:"omitempty,max=100"`
	SubArea         string   `form:"sub_area" binding:"omitempty,max=100"`
	Category        string   `form:"category" binding:"omitempty,max=100"`
	SubCategory     string   `form:"sub_category" binding:"omitempty,max=100"`
	MinRating       *float64 `form:"min_rating" binding:"omitempty,gte=0,lte=5"`
	Verified        *bool    `form:"verified"`
	Featured        *bool    `form:"featured"`
	HasWebsite      *bool    `form:"has_website"`
	HasPhone        *bool    `form:"has_phone"`
	HasEmail        *bool    `form:"has_email"`
	HasImages       *bool    `form:"has_images"`
	HasWorkingHours *bool    `form:"has_working_hours"`
	SortBy          string   `form:"sort_by" binding:"omitempty,oneof=rating reviews_count created_at name"`
	Page            int      `form:"page" binding:"omitempty,gte=1"`
	Limit           int      `form:"limit" binding:"omitempty,gte=1"`
}

// ToFilter converts the query-string input into the domain filter
func (in SearchInput) ToFilter() directory.SearchFilter {
	f := directory.SearchFilter{
		Query:           in.Query,
		CountryCode:     in.Country,
		CitySlug:        in.City,
		SubAreaSlug:     in.SubArea,
		CategorySlug:    in.Category,
		SubCategorySlug: in.SubCategory,
		MinRating:       in.MinRating,
		Verified:        in.Verified,
		Featured:        in.Featured,
		HasWebsite:      in.HasWebsite,
		HasPhone:        in.HasPhone,
		HasEmail:        in.HasEmail,
		HasImages:       in.HasImages,
		HasWorkingHours: in.HasWorkingHours,
		SortBy:          directory.SortBy(in.SortBy),
		Page:            in.Page,
		Limit:           in.Limit,
	}
	f.Normalize()
	return f
}

// SubmitRequestInput is the payload of a company registration application
type SubmitRequestInput struct {
	Name          string     `json:"name" binding:"required,min=2,max=200"`
	Description   string     `json:"description" binding:"omitempty,max=5000"`
	CategoryID    uuid.UUID  `json:"category_id" binding:"required"`
	SubCategoryID *uuid.UUID `json:"sub_category_id"`
	CountryID     uuid.UUID  `json:"country_id" binding:"required"`
	CityID        uuid.UUID  `json:"city_id" binding:"required"`
	SubAreaID     *uuid.UUID `json:"sub_area_id"`
	Phone         string     `json:"phone" binding:"omitempty,max=50"`
	Email         string     `json:"email" binding:"omitempty,email"`
	Website       string     `json:"website" binding:"omitempty,url,max=500"`
	Address       string     `json:"address" binding:"omitempty,max=500"`
}

// DecideRequestInput carries the admin decision notes
type DecideRequestInput struct {
	Notes string `json:"notes" binding:"omitempty,max=1000"`
}

// RequestView is the API shape of a registration application
type RequestView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	CategoryID  uuid.UUID  `json:"category_id"`
	CountryID   uuid.UUID  `json:"country_id"`
	CityID      uuid.UUID  `json:"city_id"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Website     string     `json:"website,omitempty"`
	Address     string     `json:"address,omitempty"`
	RequestedBy uuid.UUID  `json:"requested_by"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewRequestView maps a domain request to its API shape
func NewRequestView(r *directory.CompanyRequest) RequestView {
	return RequestView{
		ID:          r.ID,
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		CountryID:   r.CountryID,
		CityID:      r.CityID,
		Phone:       r.Phone,
		Email:       r.Email,
		Website:     r.Website,
		Address:     r.Address,
		RequestedBy: r.RequestedBy,
		Status:      string(r.Status),
		AdminNotes:  r.AdminNotes,
		DecidedAt:   r.DecidedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// MemberInput adds or updates a dashboard member
type MemberInput struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required,oneof=OWNER MANAGER EDITOR"`
}

// MemberView is the API shape of a dashboard membership
type MemberView struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMemberView maps a membership to its API shape
func NewMemberView(o *directory.CompanyOwner) MemberView {
	return MemberView{
		ID:          o.ID,
		CompanyID:   o.CompanyID,
		UserID:      o.UserID,
		Role:        string(o.Role),
		Permissions: o.Permissions,
		CreatedAt:   o.CreatedAt,
	}
}

// DayInput is one day row in a week replacement
type DayInput struct {
	DayOfWeek int    `json:"day_of_week" binding:"gte=0,lte=6"`
	OpenTime  string `json:"open_time" binding:"omitempty,len=5"`
	CloseTime string `json:"close_time" binding:"omitempty,len=5"`
	IsClosed  bool   `json:"is_closed"`
}

// WeekInput replaces a company's full weekly schedule
type WeekInput struct {
	Days []DayInput `json:"days" binding:"required,len=7,dive"`
}

// DayView is the API shape of one schedule row
type DayView struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	IsClosed  bool   `json:"is_closed"`
}

// WeekView is the API shape of a weekly schedule
type WeekView struct {
	Days      []DayView `json:"days"`
	IsOpenNow bool      `json:"is_open_now"`
}

// DashboardStats summarizes one company for its owners
type DashboardStats struct {
	Rating              decimal.Decimal `json:"rating"`
	ReviewsCount        int             `json:"reviews_count"`
	PendingReviews      int64           `json:"pending_reviews"`
	UnreadNotifications int64           `json:"unread_notifications"`
	MembersCount        int             `json:"members_count"`
}

// HomeStats is the cached site-wide counters for the landing page
type HomeStats struct {
	Companies  int64 `json:"companies"`
	Reviews    int64 `json:"reviews"`
	Categories int64 `json:"categories"`
	Cities     int64 `json:"cities"`
}
