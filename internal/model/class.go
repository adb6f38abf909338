package model

// Class represents a course offered on the marketplace as stored in the
// `classes` table.  NumberOfStudents drives the popular-classes listing
// (top six, descending).
//
// Fields:
//  ID               – primary key identifier.
//  Name             – course title.
//  ImageURL         – cover image.
//  InstructorName   – display name of the instructor.
//  InstructorEmail  – email of the instructor who owns the class.
//  AvailableSeats   – seats still open for enrollment.
//  Price            – course price in the marketplace currency.
//  NumberOfStudents – enrollment count used for popularity ranking.
//  Status           – lifecycle marker (e.g. "approved", "pending").
type Class struct {
    ID               uint64  `json:"id"`
    Name             string  `json:"name"`
    ImageURL         string  `json:"image,omitempty"`
    InstructorName   string  `json:"instructorName"`
    InstructorEmail  string  `json:"email"`
    AvailableSeats   int     `json:"availableSeats"`
    Price            float64 `json:"price"`
    NumberOfStudents int     `json:"numberOfStudents"`
    Status           string  `json:"status,omitempty"`
}
