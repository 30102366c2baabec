package entities

import (
	"time"
)

// UserType classifies a user. Values are stored as they appear in the data file.
type UserType string

const (
	UserTypeLearner    UserType = "aluno"
	UserTypeInstructor UserType = "instrutor"
)

// CourseStatus is the per-course classification reported for a user.
type CourseStatus string

const (
	CourseStatusComplete   CourseStatus = "complete"
	CourseStatusInProgress CourseStatus = "in progress"
	CourseStatusNotStarted CourseStatus = "not started"
)

// Progress bounds used by the progress and certificate rules.
const (
	ProgressStep           = 10.0
	ProgressMax            = 100.0
	CertificateMinProgress = 90.0
)

// User represents a learner or an instructor.
// ProgressByCourse is sparse: a missing key means "not enrolled", not 0%.
type User struct {
	ID                string             `json:"id"`
	Type              UserType           `json:"tipo"`
	EnrolledCourseIDs []string           `json:"cursosMatriculados,omitempty"`
	ProgressByCourse  map[string]float64 `json:"progressoCursos,omitempty"`
	Extra             Fields             `json:"-"`

	// progress entries that are not numbers, written back beside ProgressByCourse
	rawProgress Fields
}

// IsInstructor reports whether the user may own courses
func (u *User) IsInstructor() bool {
	return u.Type == UserTypeInstructor
}

// Progress returns the user's progress for a course and whether an entry exists.
func (u *User) Progress(courseID string) (float64, bool) {
	p, ok := u.ProgressByCourse[courseID]
	return p, ok
}

// IsEnrolledIn reports whether courseID is listed in the user's enrollments.
func (u *User) IsEnrolledIn(courseID string) bool {
	for _, id := range u.EnrolledCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// Lesson is a single lesson of a course. A nil duration counts as zero minutes.
type Lesson struct {
	DurationMinutes *float64 `json:"duracao,omitempty"`
	Extra           Fields   `json:"-"`
}

// Minutes returns the lesson duration, 0 when unset.
func (l Lesson) Minutes() float64 {
	if l.DurationMinutes == nil {
		return 0
	}
	return *l.DurationMinutes
}

// Course represents a course owned by an instructor
type Course struct {
	ID           string   `json:"id"`
	Name         string   `json:"nome"`
	InstructorID string   `json:"instrutorId"`
	Lessons      []Lesson `json:"aulas"`
	Extra        Fields   `json:"-"`
}

// Comment is a user's comment on a course. Rating is stored as null when absent.
type Comment struct {
	ID       string   `json:"id"`
	CourseID string   `json:"cursoId"`
	UserID   string   `json:"usuarioId"`
	Text     string   `json:"texto"`
	Rating   *float64 `json:"nota"`
	Extra    Fields   `json:"-"`
}

// Certificate records that a user completed a course.
type Certificate struct {
	ID       string    `json:"id"`
	UserID   string    `json:"usuarioId"`
	CourseID string    `json:"cursoId"`
	IssuedAt time.Time `json:"dataEmissao"`
	Extra    Fields    `json:"-"`
}

// Snapshot is the whole dataset as read from the data file.
type Snapshot struct {
	Users        []User        `json:"usuarios"`
	Courses      []Course      `json:"cursos"`
	Comments     []Comment     `json:"comentarios"`
	Certificates []Certificate `json:"certificados"`
}

// NewSnapshot returns a snapshot with four empty collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:        []User{},
		Courses:      []Course{},
		Comments:     []Comment{},
		Certificates: []Certificate{},
	}
}

// Normalize replaces missing collections with empty ones so they encode as [].
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Courses == nil {
		s.Courses = []Course{}
	}
	if s.Comments == nil {
		s.Comments = []Comment{}
	}
	if s.Certificates == nil {
		s.Certificates = []Certificate{}
	}
}

// FindUser returns a pointer into the snapshot so callers can mutate the record in place.
func (s *Snapshot) FindUser(id string) (*User, bool) {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i], true
		}
	}
	return nil, false
}

// FindCourse returns a pointer into the snapshot's course collection.
func (s *Snapshot) FindCourse(id string) (*Course, bool) {
	for i := range s.Courses {
		if s.Courses[i].ID == id {
			return &s.Courses[i], true
		}
	}
	return nil, false
}

// HasCertificate reports whether a certificate exists for the (user, course) pair.
func (s *Snapshot) HasCertificate(userID, courseID string) bool {
	for _, cert := range s.Certificates {
		if cert.UserID == userID && cert.CourseID == courseID {
			return true
		}
	}
	return false
}
