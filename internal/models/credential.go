package models

// ParsedCredential holds the normalized fields read off a scanned
// certificate, used to look the holder up in the student roster.
type ParsedCredential struct {
	RegisterNumber string `json:"register_number"`
	StudentName    string `json:"student_name"`
	CourseName     string `json:"course_name"`
	YearOfPassing  string `json:"year_of_passing"`
	CollegeName    string `json:"college_name"`
}
