package model

// Selection represents a class a user has picked but not yet paid for, as
// stored in the `selected_classes` table.  Rows are deleted one at a time
// from the cart view or swept in bulk after a payment is recorded.
type Selection struct {
    ID             uint64  `json:"id"`
    Email          string  `json:"email"`
    ClassID        uint64  `json:"classId"`
    ClassName      string  `json:"className"`
    ImageURL       string  `json:"image,omitempty"`
    InstructorName string  `json:"instructorName,omitempty"`
    Price          float64 `json:"price"`
}
