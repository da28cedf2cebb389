package dto

type OrganizationRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	GSTIN  string `json:"gstin,omitempty"`
	City   string `json:"city,omitempty"`
}

type DirectorRequest struct {
	OrganizationUserID string `json:"organizationUserId"`
	Name               string `json:"name"`
	DIN                string `json:"din,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Designation        string `json:"designation,omitempty"`
}

type PaymentRequest struct {
	PackageID string `json:"packageId"`
}
