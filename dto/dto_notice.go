package dto

type NoticeRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Link        string  `json:"link,omitempty"`
	ClientID    *string `json:"clientId"`
}
