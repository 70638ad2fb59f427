package response

import (
	"time"

	"mindlog/internal/core/domain/user"
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Age              int       `json:"age"`
	EmergencyContact *string   `json:"emergencyContact"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = string(du.ID)
	u.Email = string(du.Email)
	u.FirstName = du.FirstName
	u.LastName = du.LastName
	u.Age = du.Age
	if du.EmergencyContact.IsPresent {
		u.EmergencyContact = &du.EmergencyContact.Value
	}
	u.CreatedAt = du.CreatedAt
}
