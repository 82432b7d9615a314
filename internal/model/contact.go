package model

type ContactTag string

const (
	ContactTagFamily ContactTag = "family"
	ContactTagFriend ContactTag = "friend"
	ContactTagWork   ContactTag = "work"
	ContactTagOther  ContactTag = "other"
)

func (t ContactTag) Valid() bool {
	switch t {
	case ContactTagFamily, ContactTagFriend, ContactTagWork, ContactTagOther:
		return true
	}
	return false
}

type Contact struct {
	Meta
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Email   string     `json:"email"`
	Tag     ContactTag `json:"tag"`
	Address string     `json:"address"`
}

type CreateContactRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Email   string     `json:"email"`
	Tag     ContactTag `json:"tag"`
	Address string     `json:"address"`
}

type UpdateContactRequest struct {
	Name    *string     `json:"name,omitempty"`
	Phone   *string     `json:"phone,omitempty"`
	Email   *string     `json:"email,omitempty"`
	Tag     *ContactTag `json:"tag,omitempty"`
	Address *string     `json:"address,omitempty"`
}
