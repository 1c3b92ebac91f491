package enquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Enquiry is a course enquiry form submission.
type Enquiry struct {
	ID        uuid.UUID `json:"id"`
	Course    string    `json:"course"`
	FirstName string    `json:"fname"`
	LastName  string    `json:"lname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, e *Enquiry) error
}
