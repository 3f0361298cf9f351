package storage

// Producer — цех/ателье, уникален по имени.
type Producer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type Color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DefectReason struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
