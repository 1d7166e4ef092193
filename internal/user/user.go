package user

import "strings"

// Gender values accepted by the app (Spanish labels kept for mobile client
// compatibility).
const (
	GenderFemale = "Mujer"
	GenderMale   = "Hombre"
)

type User struct {
	ID              int     `json:"id"`
	Username        string  `json:"username"`
	Name            string  `json:"name,omitempty"`
	LastName        string  `json:"lastName,omitempty"`
	SecondLastName  string  `json:"secondLastName,omitempty"`
	Avatar          string  `json:"avatar,omitempty"`
	AvatarThumbnail string  `json:"avatarThumbnail,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Email           string  `json:"email"`
	Password        string  `json:"password,omitempty"`
	Birthday        *string `json:"birthday,omitempty"`
	Gender          string  `json:"gender,omitempty"`
	RegisterDate    string  `json:"registerDate,omitempty"`
	LastModifyDate  string  `json:"lastModifyDate,omitempty"`
	IsActive        bool    `json:"isActive"`
	IsStaff         bool    `json:"isStaff"`
	IsSuperuser     bool    `json:"isSuperuser"`
	LastLogin       *string `json:"lastLogin,omitempty"`
}

// FullName joins name, last name and second last name, skipping blanks.
func (u User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.Name, u.LastName, u.SecondLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func ValidGender(gender string) bool {
	return gender == "" || gender == GenderFemale || gender == GenderMale
}
