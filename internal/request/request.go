package request

import "strings"

// Request is a user-submitted service inquiry. The requester's name and
// contact fields are snapshots taken at submission time, not references to
// the user profile.
type Request struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	RequestDate    string `json:"requestDate"`
	DeviceOS       string `json:"deviceOs"`
	Comment        string `json:"comment"`
	Status         bool   `json:"status"`
	UserID         int    `json:"userId"`
}

const MaxCommentLen = 500

// FullName joins the requester's name parts, skipping blanks.
func (r Request) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Name, r.LastName, r.SecondLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
