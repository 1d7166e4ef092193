package device

// Device is one push-notification registration for a user.
type Device struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	DeviceToken string `json:"deviceToken"`
	DeviceOS    string `json:"deviceOs"`
	Status      bool   `json:"status"`
}

const (
	MaxTokenLen = 250
	MaxOSLen    = 20
)
