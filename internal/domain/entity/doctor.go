package entity

// DoctorProfile is the 1:1 extension of an account holding the DOCTOR role.
// The directory fields (speciality, hospital, photo) are visible to any
// signed-in user.
type DoctorProfile struct {
	ID               int64
	Name             string
	Speciality       string
	Hospital         string
	Photo            string
	About            string
	NumberOfPatients int
	NumberOfRatings  int
	Rating           string
}
