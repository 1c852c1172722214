package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// HostResponse describes the host serving the current request.
type HostResponse struct {
	Host     string `json:"host"`
	HostFull string `json:"host_full"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
