package domain

// RequestService links one request to one ordered catalog service.
type RequestService struct {
	ID        int `json:"Id"`
	RequestID int `json:"RequestId"`
	ServiceID int `json:"ServiceId"`
}
