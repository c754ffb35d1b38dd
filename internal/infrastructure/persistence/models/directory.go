package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/morabaat/backend/internal/domain/directory"
)

// CompanyModel is the persistence model for the Company domain entity
type CompanyModel struct {
	BaseModel
	Slug          string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(255);not null;index"`
	Description   string          `gorm:"type:text"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubCategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	CountryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CityID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubAreaID     *uuid.UUID      `gorm:"type:uuid;index"`
	Phone         string          `gorm:"type:varchar(32)"`
	Email         string          `gorm:"type:varchar(255)"`
	Website       string          `gorm:"type:varchar(500)"`
	Address       string          `gorm:"type:varchar(500)"`
	Latitude      *float64        `gorm:"type:double precision"`
	Longitude     *float64        `gorm:"type:double precision"`
	LogoImage     string          `gorm:"type:varchar(500)"`
	CoverImage    string          `gorm:"type:varchar(500)"`
	Gallery       string          `gorm:"type:text;default:'[]'"`
	Services      string          `gorm:"type:text;default:'[]'"`
	Rating        decimal.Decimal `gorm:"type:numeric(2,1);not null;default:0"`
	ReviewsCount  int             `gorm:"not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	IsVerified    bool            `gorm:"not null;default:false"`
	IsFeatured    bool            `gorm:"not null;default:false"`
}

func (CompanyModel) TableName() string { return "companies" }

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *directory.Company {
	return &directory.Company{
		BaseEntity:    m.BaseModel.ToDomain(),
		Slug:          m.Slug,
		Name:          m.Name,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		SubCategoryID: m.SubCategoryID,
		CountryID:     m.CountryID,
		CityID:        m.CityID,
		SubAreaID:     m.SubAreaID,
		Phone:         m.Phone,
		Email:         m.Email,
		Website:       m.Website,
		Address:       m.Address,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		LogoImage:     m.LogoImage,
		CoverImage:    m.CoverImage,
		Gallery:       unmarshalStrings(m.Gallery),
		Services:      unmarshalStrings(m.Services),
		Rating:        m.Rating,
		ReviewsCount:  m.ReviewsCount,
		IsActive:      m.IsActive,
		IsVerified:    m.IsVerified,
		IsFeatured:    m.IsFeatured,
	}
}

// FromDomain populates the persistence model from a domain Company
func (m *CompanyModel) FromDomain(c *directory.Company) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Slug = c.Slug
	m.Name = c.Name
	m.Description = c.Description
	m.CategoryID = c.CategoryID
	m.SubCategoryID = c.SubCategoryID
	m.CountryID = c.CountryID
	m.CityID = c.CityID
	m.SubAreaID = c.SubAreaID
	m.Phone = c.Phone
	m.Email = c.Email
	m.Website = c.Website
	m.Address = c.Address
	m.Latitude = c.Latitude
	m.Longitude = c.Longitude
	m.LogoImage = c.LogoImage
	m.CoverImage = c.CoverImage
	m.Gallery = marshalStrings(c.Gallery)
	m.Services = marshalStrings(c.Services)
	m.Rating = c.Rating
	m.ReviewsCount = c.ReviewsCount
	m.IsActive = c.IsActive
	m.IsVerified = c.IsVerified
	m.IsFeatured = c.IsFeatured
}

// CompanyOwnerModel is the persistence model for the CompanyOwner membership
type CompanyOwnerModel struct {
	BaseModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_owners_pair;index"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_owners_pair;index"`
	Role        string    `gorm:"type:varchar(32);not null"`
	Permissions string    `gorm:"type:text;default:'[]'"`
}

func (CompanyOwnerModel) TableName() string { return "company_owners" }

// ToDomain converts the persistence model to a domain CompanyOwner
func (m *CompanyOwnerModel) ToDomain() *directory.CompanyOwner {
	return &directory.CompanyOwner{
		BaseEntity:  m.BaseModel.ToDomain(),
		CompanyID:   m.CompanyID,
		UserID:      m.UserID,
		Role:        directory.OwnerRole(m.Role),
		Permissions: unmarshalStrings(m.Permissions),
	}
}

// FromDomain populates the persistence model from a domain CompanyOwner
func (m *CompanyOwnerModel) FromDomain(o *directory.CompanyOwner) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.CompanyID = o.CompanyID
	m.UserID = o.UserID
	m.Role = string(o.Role)
	m.Permissions = marshalStrings(o.Permissions)
}

// WorkingHoursModel is the persistence model for one WorkingHours day row
type WorkingHoursModel struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_working_hours_company_day;index"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_working_hours_company_day"`
	OpenTime  string    `gorm:"type:varchar(5)"`
	CloseTime string    `gorm:"type:varchar(5)"`
	IsClosed  bool      `gorm:"not null;default:false"`
}

func (WorkingHoursModel) TableName() string { return "working_hours" }

// ToDomain converts the persistence model to a domain WorkingHours row
func (m *WorkingHoursModel) ToDomain() *directory.WorkingHours {
	return &directory.WorkingHours{
		BaseEntity: m.BaseModel.ToDomain(),
		CompanyID:  m.CompanyID,
		DayOfWeek:  m.DayOfWeek,
		OpenTime:   m.OpenTime,
		CloseTime:  m.CloseTime,
		IsClosed:   m.IsClosed,
	}
}

// FromDomain populates the persistence model from a domain WorkingHours row
func (m *WorkingHoursModel) FromDomain(w *directory.WorkingHours) {
	m.FromDomainBaseEntity(w.BaseEntity)
	m.CompanyID = w.CompanyID
	m.DayOfWeek = w.DayOfWeek
	m.OpenTime = w.OpenTime
	m.CloseTime = w.CloseTime
	m.IsClosed = w.IsClosed
}

// CompanyRequestModel is the persistence model for company registration applications
type CompanyRequestModel struct {
	BaseModel
	Name          string     `gorm:"type:varchar(255);not null"`
	Description   string     `gorm:"type:text"`
	CategoryID    uuid.UUID  `gorm:"type:uuid;not null"`
	SubCategoryID *uuid.UUID `gorm:"type:uuid"`
	CountryID     uuid.UUID  `gorm:"type:uuid;not null"`
	CityID        uuid.UUID  `gorm:"type:uuid;not null"`
	SubAreaID     *uuid.UUID `gorm:"type:uuid"`
	Phone         string     `gorm:"type:varchar(32)"`
	Email         string     `gorm:"type:varchar(255)"`
	Website       string     `gorm:"type:varchar(500)"`
	Address       string     `gorm:"type:varchar(500)"`
	RequestedBy   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status        string     `gorm:"type:varchar(16);not null;default:'PENDING';index"`
	AdminNotes    string     `gorm:"type:text"`
	DecidedBy     *uuid.UUID `gorm:"type:uuid"`
	DecidedAt     *time.Time `gorm:"type:timestamptz"`
}

func (CompanyRequestModel) TableName() string { return "company_requests" }

// ToDomain converts the persistence model to a domain CompanyRequest
func (m *CompanyRequestModel) ToDomain() *directory.CompanyRequest {
	return &directory.CompanyRequest{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		SubCategoryID: m.SubCategoryID,
		CountryID:     m.CountryID,
		CityID:        m.CityID,
		SubAreaID:     m.SubAreaID,
		Phone:         m.Phone,
		Email:         m.Email,
		Website:       m.Website,
		Address:       m.Address,
		RequestedBy:   m.RequestedBy,
		Status:        directory.RequestStatus(m.Status),
		AdminNotes:    m.AdminNotes,
		DecidedBy:     m.DecidedBy,
		DecidedAt:     m.DecidedAt,
	}
}

// FromDomain populates the persistence model from a domain CompanyRequest
func (m *CompanyRequestModel) FromDomain(r *directory.CompanyRequest) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.Description = r.Description
	m.CategoryID = r.CategoryID
	m.SubCategoryID = r.SubCategoryID
	m.CountryID = r.CountryID
	m.CityID = r.CityID
	m.SubAreaID = r.SubAreaID
	m.Phone = r.Phone
	m.Email = r.Email
	m.Website = r.Website
	m.Address = r.Address
	m.RequestedBy = r.RequestedBy
	m.Status = string(r.Status)
	m.AdminNotes = r.AdminNotes
	m.DecidedBy = r.DecidedBy
	m.DecidedAt = r.DecidedAt
}
