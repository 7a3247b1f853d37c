package booking

import "encoding/json"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanTransitionTo reports whether a booking in status s may move to next.
// Only upcoming -> cancelled is performed by the client; completed is set
// by the remote service and is terminal, as is cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusUpcoming && (next == StatusCancelled || next == StatusCompleted)
}

// Active bookings count against the one-booking-per-class rule.
func (s Status) Active() bool {
	return s == StatusUpcoming || s == StatusCompleted
}

type FitnessClass struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Time       string `json:"time"`
	Instructor string `json:"instructor"`
	Capacity   int    `json:"capacity"`
	Remaining  int    `json:"remaining"`
}

type Booking struct {
	ID       string `json:"id"`
	ClassID  string `json:"classId"`
	Status   Status `json:"status"`
	BookedAt string `json:"bookedAt"`
}

// UserDocument is the user record of the mock API. Fields this package does
// not know about are kept in Extra and written back on full replace.
type UserDocument struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Bookings []Booking `json:"bookings"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownUserFields = []string{"id", "username", "email", "bookings"}

func (u *UserDocument) UnmarshalJSON(data []byte) error {
	type plain UserDocument
	var doc plain

	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var raw map[string]json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, k := range knownUserFields {
		delete(raw, k)
	}

	if len(raw) != 0 {
		doc.Extra = raw
	}

	*u = UserDocument(doc)

	return nil
}

func (u UserDocument) MarshalJSON() ([]byte, error) {
	out := map[string]any{}

	for k, v := range u.Extra {
		out[k] = v
	}

	bookings := u.Bookings
	if bookings == nil {
		bookings = []Booking{}
	}

	out["id"] = u.ID
	out["username"] = u.Username
	out["email"] = u.Email
	out["bookings"] = bookings

	return json.Marshal(out)
}

// BookingDetails is a booking joined with the class it refers to.
type BookingDetails struct {
	Booking
	ClassName  string `json:"className"`
	Time       string `json:"time"`
	Instructor string `json:"instructor"`
	Location   string `json:"location"`
}

type Dashboard struct {
	Upcoming []BookingDetails `json:"upcoming"`
	Past     []BookingDetails `json:"past"`
}
