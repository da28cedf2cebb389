package dto

type FillToggleDTO struct {
	Active bool `json:"active"`
}

type FillRequestsDTO struct {
	TicketID            string `json:"ticketId"`
	TeamFill            bool   `json:"teamFill"`
	ClientFillRequested bool   `json:"clientFillRequested"`
}
