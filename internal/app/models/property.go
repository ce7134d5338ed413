package models

import (
	"time"
)

// PropertyType classifies the registered asset
type PropertyType string

const (
	PropertyTypeLand        PropertyType = "land"
	PropertyTypeBuilding    PropertyType = "building"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeResidential PropertyType = "residential"
)

// Valid reports whether the property type is known.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeLand, PropertyTypeBuilding, PropertyTypeCommercial, PropertyTypeResidential:
		return true
	}
	return false
}

// PropertyStatus is the verification state of a property.
type PropertyStatus string

const (
	StatusPending     PropertyStatus = "pending"
	StatusUnderReview PropertyStatus = "under_review"
	StatusApproved    PropertyStatus = "approved"
	StatusRejected    PropertyStatus = "rejected"
)

// statusTransitions holds every allowed verification transition.
// approved and rejected are terminal: a rejected property cannot
// re-enter the pipeline.
var statusTransitions = map[PropertyStatus][]PropertyStatus{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle transition.
func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s PropertyStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// Valid reports whether the status is known.
func (s PropertyStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// AvailabilityStatus is the secondary market state of an approved property.
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilitySold        AvailabilityStatus = "sold"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// Valid reports whether the availability status is known.
func (a AvailabilityStatus) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilitySold, AvailabilityUnavailable:
		return true
	}
	return false
}

// DocumentType classifies an uploaded title document.
type DocumentType string

const (
	DocumentCertificateOfOccupancy DocumentType = "certificate_of_occupancy"
	DocumentDeedOfAssignment       DocumentType = "deed_of_assignment"
	DocumentSurveyPlan             DocumentType = "survey_plan"
	DocumentBuildingApproval       DocumentType = "building_approval"
	DocumentOther                  DocumentType = "other"
)

// Valid reports whether the document type is known.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentCertificateOfOccupancy, DocumentDeedOfAssignment, DocumentSurveyPlan, DocumentBuildingApproval, DocumentOther:
		return true
	}
	return false
}

// Property defines the property model based on the 'properties' table.
type Property struct {
	ID                 int64               `json:"id" db:"id"`
	Title              string              `json:"title" db:"title"`
	Description        string              `json:"description" db:"description"`
	PropertyType       PropertyType        `json:"property_type" db:"property_type"`
	Address            string              `json:"address" db:"address"`
	LGA                string              `json:"lga" db:"lga"`
	State              string              `json:"state" db:"state"`
	SizeSqm            float64             `json:"size_sqm" db:"size_sqm"`
	OwnerID            int64               `json:"owner_id" db:"owner_id"`
	Status             PropertyStatus      `json:"status" db:"status"`
	IsForSale          bool                `json:"is_for_sale" db:"is_for_sale"`
	IsForLease         bool                `json:"is_for_lease" db:"is_for_lease"`
	Price              *int64              `json:"price,omitempty" db:"price"`
	LeasePriceAnnual   *int64              `json:"lease_price_annual,omitempty" db:"lease_price_annual"`
	Images             []string            `json:"images" db:"images"`
	AvailabilityStatus *AvailabilityStatus `json:"availability_status,omitempty" db:"availability_status"`
	VerificationNotes  *string             `json:"verification_notes,omitempty" db:"verification_notes"`
	VerifiedBy         *int64              `json:"verified_by,omitempty" db:"verified_by"`
	VerifiedAt         *time.Time          `json:"verified_at,omitempty" db:"verified_at"`
	SoldPrice          *int64              `json:"sold_price,omitempty" db:"sold_price"`
	SoldAt             *time.Time          `json:"sold_at,omitempty" db:"sold_at"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`

	Owner         *User              `json:"owner,omitempty"`          // Relation, no db tag
	Documents     []PropertyDocument `json:"documents,omitempty"`      // Relation, no db tag
	UpdateRequest *UpdateRequest     `json:"update_request,omitempty"` // Pending request, if any
}

// IsListed reports whether the property is offered for sale or lease.
// A property with neither flag is "registered only", not orphaned data.
func (p *Property) IsListed() bool {
	return p.IsForSale || p.IsForLease
}

// PropertyDocument defines a title document attached to a property.
type PropertyDocument struct {
	ID           int64        `json:"id" db:"id"`
	PropertyID   int64        `json:"property_id" db:"property_id"`
	DocumentType DocumentType `json:"document_type" db:"document_type"`
	FileName     string       `json:"file_name" db:"file_name"`
	FileURL      string       `json:"file_url" db:"file_url"`
	UploadedAt   time.Time    `json:"uploaded_at" db:"uploaded_at"`
}

// UpdateRequest is an owner-submitted proposal to change an approved
// property's availability, subject to admin action. AdminApproved is
// tri-state: nil while pending, then true or false once resolved.
type UpdateRequest struct {
	ID            int64              `json:"id" db:"id"`
	PropertyID    int64              `json:"property_id" db:"property_id"`
	NewStatus     AvailabilityStatus `json:"new_status" db:"new_status"`
	Reason        string             `json:"reason" db:"reason"`
	SoldPrice     *int64             `json:"sold_price,omitempty" db:"sold_price"`
	AdminApproved *bool              `json:"admin_approved,omitempty" db:"admin_approved"`
	AdminNotes    *string            `json:"admin_notes,omitempty" db:"admin_notes"`
	RequestedAt   time.Time          `json:"requested_at" db:"requested_at"`
	ResolvedBy    *int64             `json:"resolved_by,omitempty" db:"resolved_by"`
	ResolvedAt    *time.Time         `json:"resolved_at,omitempty" db:"resolved_at"`
}

// Pending reports whether the request still awaits admin action.
func (r *UpdateRequest) Pending() bool {
	return r.AdminApproved == nil
}
