package directory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// RequestStatus is the lifecycle state of a company registration application
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// CompanyRequest is a registration application. Approval creates the Company
// and an OWNER membership for the requester.
type CompanyRequest struct {
	shared.BaseEntity
	Name          string
	Description   string
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
	CountryID     uuid.UUID
	CityID        uuid.UUID
	SubAreaID     *uuid.UUID
	Phone         string
	Email         string
	Website       string
	Address       string
	RequestedBy   uuid.UUID
	Status        RequestStatus
	AdminNotes    string
	DecidedBy     *uuid.UUID
	DecidedAt     *time.Time
}

// NewCompanyRequest creates a pending application
func NewCompanyRequest(requestedBy uuid.UUID, in NewCompanyInput) (*CompanyRequest, error) {
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Request requires a user")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if in.CategoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Request requires a category")
	}
	if in.CountryID == uuid.Nil || in.CityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Request requires a country and city")
	}
	return &CompanyRequest{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		CategoryID:  in.CategoryID,
		CountryID:   in.CountryID,
		CityID:      in.CityID,
		RequestedBy: requestedBy,
		Status:      RequestStatusPending,
	}, nil
}

// Approve marks the request approved. Only pending requests can be decided.
func (r *CompanyRequest) Approve(adminID uuid.UUID, notes string) error {
	return r.decide(RequestStatusApproved, adminID, notes)
}

// Reject marks the request rejected
func (r *CompanyRequest) Reject(adminID uuid.UUID, notes string) error {
	return r.decide(RequestStatusRejected, adminID, notes)
}

func (r *CompanyRequest) decide(status RequestStatus, adminID uuid.UUID, notes string) error {
	if r.Status != RequestStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Request already decided: "+string(r.Status))
	}
	now := time.Now()
	r.Status = status
	r.AdminNotes = notes
	r.DecidedBy = &adminID
	r.DecidedAt = &now
	r.Touch()
	return nil
}
