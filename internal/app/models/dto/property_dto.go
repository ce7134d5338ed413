package dto

import (
	"time"

	"github.com/akwareg/akwareg-backend/internal/app/models"
)

// CreatePropertyRequest represents a property registration submission.
// Newly registered properties always start in pending status.
type CreatePropertyRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description" binding:"required"`
	PropertyType     string  `json:"property_type" binding:"required,oneof=land building commercial residential"`
	Address          string  `json:"address" binding:"required"`
	LGA              string  `json:"lga" binding:"required"`
	State            string  `json:"state"`
	SizeSqm          float64 `json:"size_sqm" binding:"required,gt=0"`
	IsForSale        bool    `json:"is_for_sale"`
	IsForLease       bool    `json:"is_for_lease"`
	Price            *int64  `json:"price,omitempty" binding:"omitempty,gt=0"`
	LeasePriceAnnual *int64  `json:"lease_price_annual,omitempty" binding:"omitempty,gt=0"`
}

// UpdatePropertyRequest represents an owner edit of a property's
// descriptive fields.
type UpdatePropertyRequest struct {
	Title            *string  `json:"title,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Address          *string  `json:"address,omitempty"`
	LGA              *string  `json:"lga,omitempty"`
	State            *string  `json:"state,omitempty"`
	SizeSqm          *float64 `json:"size_sqm,omitempty" binding:"omitempty,gt=0"`
	IsForSale        *bool    `json:"is_for_sale,omitempty"`
	IsForLease       *bool    `json:"is_for_lease,omitempty"`
	Price            *int64   `json:"price,omitempty" binding:"omitempty,gt=0"`
	LeasePriceAnnual *int64   `json:"lease_price_annual,omitempty" binding:"omitempty,gt=0"`
}

// PropertyFilters represents the search and listing query parameters.
// All provided filters are combined with AND semantics.
type PropertyFilters struct {
	Query        string `form:"q"`
	PropertyType string `form:"property_type" binding:"omitempty,oneof=land building commercial residential"`
	LGA          string `form:"lga"`
	MinPrice     *int64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice     *int64 `form:"max_price" binding:"omitempty,gte=0"`
	ForSale      *bool  `form:"for_sale"`
	ForLease     *bool  `form:"for_lease"`
	View         string `form:"view" binding:"omitempty,oneof=listed registered sold"`
	Status       string `form:"status" binding:"omitempty,oneof=pending under_review approved rejected"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

// PropertyResponse represents a property with its owner and documents
type PropertyResponse struct {
	ID                 int64                  `json:"id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	PropertyType       string                 `json:"property_type"`
	Address            string                 `json:"address"`
	LGA                string                 `json:"lga"`
	State              string                 `json:"state"`
	SizeSqm            float64                `json:"size_sqm"`
	OwnerID            int64                  `json:"owner_id"`
	OwnerName          string                 `json:"owner_name,omitempty"`
	Status             string                 `json:"status"`
	IsForSale          bool                   `json:"is_for_sale"`
	IsForLease         bool                   `json:"is_for_lease"`
	Price              *int64                 `json:"price,omitempty"`
	LeasePriceAnnual   *int64                 `json:"lease_price_annual,omitempty"`
	Images             []string               `json:"images"`
	AvailabilityStatus *string                `json:"availability_status,omitempty"`
	VerificationNotes  *string                `json:"verification_notes,omitempty"`
	VerifiedAt         *time.Time             `json:"verified_at,omitempty"`
	SoldPrice          *int64                 `json:"sold_price,omitempty"`
	SoldAt             *time.Time             `json:"sold_at,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	Documents          []DocumentResponse     `json:"documents,omitempty"`
	UpdateRequest      *UpdateRequestResponse `json:"update_request,omitempty"`
}

// PropertyListResponse represents a paginated list of properties
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Pagination PaginationInfo     `json:"pagination"`
}

// DocumentResponse represents an uploaded title document
type DocumentResponse struct {
	ID           int64     `json:"id"`
	PropertyID   int64     `json:"property_id"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// VerifyPropertyRequest represents an official's verification decision
type VerifyPropertyRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Notes  string `json:"notes"`
}

// CreateUpdateRequestRequest represents an owner's availability change
// proposal for an approved property.
type CreateUpdateRequestRequest struct {
	NewStatus string `json:"new_status" binding:"required,oneof=sold unavailable"`
	Reason    string `json:"reason" binding:"required"`
	SoldPrice *int64 `json:"sold_price,omitempty" binding:"omitempty,gt=0"`
}

// ResolveUpdateRequestRequest represents an admin decision on a
// pending availability update request.
type ResolveUpdateRequestRequest struct {
	Action     string `json:"action" binding:"required,oneof=approve reject"`
	AdminNotes string `json:"admin_notes"`
}

// UpdateRequestResponse represents an availability update request
type UpdateRequestResponse struct {
	ID            int64      `json:"id"`
	PropertyID    int64      `json:"property_id"`
	PropertyTitle string     `json:"property_title,omitempty"`
	NewStatus     string     `json:"new_status"`
	Reason        string     `json:"reason"`
	SoldPrice     *int64     `json:"sold_price,omitempty"`
	AdminApproved *bool      `json:"admin_approved,omitempty"`
	AdminNotes    *string    `json:"admin_notes,omitempty"`
	RequestedAt   time.Time  `json:"requested_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// FromProperty converts a models.Property to a PropertyResponse
func FromProperty(p *models.Property) PropertyResponse {
	if p == nil {
		return PropertyResponse{}
	}

	resp := PropertyResponse{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		PropertyType:      string(p.PropertyType),
		Address:           p.Address,
		LGA:               p.LGA,
		State:             p.State,
		SizeSqm:           p.SizeSqm,
		OwnerID:           p.OwnerID,
		Status:            string(p.Status),
		IsForSale:         p.IsForSale,
		IsForLease:        p.IsForLease,
		Price:             p.Price,
		LeasePriceAnnual:  p.LeasePriceAnnual,
		Images:            p.Images,
		VerificationNotes: p.VerificationNotes,
		VerifiedAt:        p.VerifiedAt,
		SoldPrice:         p.SoldPrice,
		SoldAt:            p.SoldAt,
		CreatedAt:         p.CreatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.AvailabilityStatus != nil {
		availability := string(*p.AvailabilityStatus)
		resp.AvailabilityStatus = &availability
	}
	if p.Owner != nil {
		resp.OwnerName = p.Owner.FullName
	}
	for i := range p.Documents {
		resp.Documents = append(resp.Documents, FromPropertyDocument(&p.Documents[i]))
	}
	if p.UpdateRequest != nil {
		updateReq := FromUpdateRequest(p.UpdateRequest)
		resp.UpdateRequest = &updateReq
	}
	return resp
}

// FromPropertyDocument converts a models.PropertyDocument to a DocumentResponse
func FromPropertyDocument(d *models.PropertyDocument) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		PropertyID:   d.PropertyID,
		DocumentType: string(d.DocumentType),
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		UploadedAt:   d.UploadedAt,
	}
}

// FromUpdateRequest converts a models.UpdateRequest to an UpdateRequestResponse
func FromUpdateRequest(r *models.UpdateRequest) UpdateRequestResponse {
	return UpdateRequestResponse{
		ID:            r.ID,
		PropertyID:    r.PropertyID,
		NewStatus:     string(r.NewStatus),
		Reason:        r.Reason,
		SoldPrice:     r.SoldPrice,
		AdminApproved: r.AdminApproved,
		AdminNotes:    r.AdminNotes,
		RequestedAt:   r.RequestedAt,
		ResolvedAt:    r.ResolvedAt,
	}
}
