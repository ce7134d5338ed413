package dto

// AdminUserFilters represents the admin user listing query parameters
type AdminUserFilters struct {
	Query    string `form:"q"`
	Role     string `form:"role" binding:"omitempty,oneof=property_owner government_official admin"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// VerifyUserRequest represents an admin decision on account verification
type VerifyUserRequest struct {
	IsVerified bool `json:"is_verified"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// AdminOverviewResponse represents the admin panel aggregate counters
type AdminOverviewResponse struct {
	TotalProperties       int64            `json:"total_properties"`
	PropertiesByStatus    map[string]int64 `json:"properties_by_status"`
	PropertiesByType      map[string]int64 `json:"properties_by_type"`
	PendingUpdateRequests int64            `json:"pending_update_requests"`
	TotalUsers            int64            `json:"total_users"`
	LGAsCovered           int64            `json:"lgas_covered"`
	TotalRevenue          int64            `json:"total_revenue"`
}

// OwnerDashboardResponse represents an owner's dashboard counters
type OwnerDashboardResponse struct {
	TotalProperties int64 `json:"total_properties"`
	RegisteredOnly  int64 `json:"registered_only"`
	Listed          int64 `json:"listed"`
	Sold            int64 `json:"sold"`
	Revenue         int64 `json:"revenue"`
}

// PublicStatsResponse represents the public home-page counters
type PublicStatsResponse struct {
	RegisteredProperties int64 `json:"registered_properties"`
	VerifiedOwners       int64 `json:"verified_owners"`
	LGAsCovered          int64 `json:"lgas_covered"`
}

// UpdateRequestListResponse represents pending availability update requests
type UpdateRequestListResponse struct {
	Requests   []UpdateRequestResponse `json:"requests"`
	Pagination PaginationInfo          `json:"pagination"`
}
