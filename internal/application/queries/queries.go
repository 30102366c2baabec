// Package queries answers read-only questions over a dataset snapshot.
// Every function is pure: it never modifies the snapshot it is given.
package queries

import (
	"sort"

	"github.com/edutrack/core/internal/domain/entities"
)

// Defaults applied when a threshold is not supplied by the caller.
const (
	DefaultMinComments = 3.0
	DefaultMinProgress = 90.0
)

// Instructors returns every user of type instructor.
func Instructors(s *entities.Snapshot) []entities.User {
	result := make([]entities.User, 0)
	for _, u := range s.Users {
		if u.IsInstructor() {
			result = append(result, u)
		}
	}
	return result
}

// CoursesWithManyComments returns the courses with strictly more than min comments.
func CoursesWithManyComments(s *entities.Snapshot, min float64) []entities.Course {
	counts := make(map[string]int)
	for _, c := range s.Comments {
		counts[c.CourseID]++
	}

	result := make([]entities.Course, 0)
	for _, course := range s.Courses {
		if float64(counts[course.ID]) > min {
			result = append(result, course)
		}
	}
	return result
}

// CoursesOfUser returns the courses the user is enrolled in.
func CoursesOfUser(s *entities.Snapshot, userID string) ([]entities.Course, error) {
	user, ok := s.FindUser(userID)
	if !ok {
		return nil, entities.ErrUserNotFound
	}

	result := make([]entities.Course, 0)
	for _, course := range s.Courses {
		if user.IsEnrolledIn(course.ID) {
			result = append(result, course)
		}
	}
	return result, nil
}

// UsersWithProgressAbove returns users with at least one progress entry strictly above min.
func UsersWithProgressAbove(s *entities.Snapshot, min float64) []entities.User {
	result := make([]entities.User, 0)
	for _, u := range s.Users {
		for _, p := range u.ProgressByCourse {
			if p > min {
				result = append(result, u)
				break
			}
		}
	}
	return result
}

// CommentsOfUser returns every comment written by the user.
func CommentsOfUser(s *entities.Snapshot, userID string) []entities.Comment {
	result := make([]entities.Comment, 0)
	for _, c := range s.Comments {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result
}

// AverageProgress is the mean of every user's progress on the course.
// Users without an entry for the course are skipped.
func AverageProgress(s *entities.Snapshot, courseID string) (float64, error) {
	var values []float64
	for i := range s.Users {
		if p, ok := s.Users[i].Progress(courseID); ok {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return 0, entities.ErrNoProgress
	}
	return mean(values), nil
}

// AverageRating is the mean of the non-null ratings left on the course.
func AverageRating(s *entities.Snapshot, courseID string) (float64, error) {
	values := ratings(s, courseID)
	if len(values) == 0 {
		return 0, entities.ErrNoRatings
	}
	return mean(values), nil
}

// TotalDuration sums the lesson durations of a course in minutes.
func TotalDuration(s *entities.Snapshot, courseID string) (float64, error) {
	course, ok := s.FindCourse(courseID)
	if !ok {
		return 0, entities.ErrCourseNotFound
	}

	var total float64
	for _, l := range course.Lessons {
		total += l.Minutes()
	}
	return total, nil
}

// CourseCountByInstructor counts the courses owned by instructorID.
// The instructor itself is not required to exist.
func CourseCountByInstructor(s *entities.Snapshot, instructorID string) int {
	count := 0
	for _, c := range s.Courses {
		if c.InstructorID == instructorID {
			count++
		}
	}
	return count
}

// CertificatesPerCourse counts issued certificates by course id.
func CertificatesPerCourse(s *entities.Snapshot) map[string]int {
	result := make(map[string]int)
	for _, cert := range s.Certificates {
		result[cert.CourseID]++
	}
	return result
}

// UsersGroupedByType counts users by their type.
func UsersGroupedByType(s *entities.Snapshot) map[entities.UserType]int {
	result := make(map[entities.UserType]int)
	for _, u := range s.Users {
		result[u.Type]++
	}
	return result
}

// CoursesRankedByRating returns every course with its mean rating, best first.
// Courses without ratings rank with 0 instead of failing. Ties keep collection order.
func CoursesRankedByRating(s *entities.Snapshot) []entities.RankedCourse {
	result := make([]entities.RankedCourse, 0, len(s.Courses))
	for _, course := range s.Courses {
		var avg float64
		if values := ratings(s, course.ID); len(values) > 0 {
			avg = mean(values)
		}
		result = append(result, entities.RankedCourse{Course: course, AverageRating: avg})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AverageRating > result[j].AverageRating
	})
	return result
}

// UsersWithMultipleCertificates returns the users holding more than one certificate.
func UsersWithMultipleCertificates(s *entities.Snapshot) []entities.User {
	counts := make(map[string]int)
	for _, cert := range s.Certificates {
		counts[cert.UserID]++
	}

	result := make([]entities.User, 0)
	for _, u := range s.Users {
		if counts[u.ID] > 1 {
			result = append(result, u)
		}
	}
	return result
}

// StudentsWithHighProgress returns users whose progress on the course is strictly above min.
func StudentsWithHighProgress(s *entities.Snapshot, courseID string, min float64) []entities.User {
	result := make([]entities.User, 0)
	for i := range s.Users {
		if p, ok := s.Users[i].Progress(courseID); ok && p > min {
			result = append(result, s.Users[i])
		}
	}
	return result
}

// CourseStatusSummary classifies every course the user has a progress entry for.
func CourseStatusSummary(s *entities.Snapshot, userID string) (map[string]entities.CourseStatus, error) {
	user, ok := s.FindUser(userID)
	if !ok {
		return nil, entities.ErrUserNotFound
	}

	result := make(map[string]entities.CourseStatus, len(user.ProgressByCourse))
	for courseID, p := range user.ProgressByCourse {
		result[courseID] = classify(p)
	}
	return result, nil
}

// Stats counts the records in each collection.
func Stats(s *entities.Snapshot) entities.DatasetStats {
	return entities.DatasetStats{
		Users:        len(s.Users),
		Courses:      len(s.Courses),
		Comments:     len(s.Comments),
		Certificates: len(s.Certificates),
	}
}

func classify(p float64) entities.CourseStatus {
	switch {
	case p >= entities.ProgressMax:
		return entities.CourseStatusComplete
	case p > 0:
		return entities.CourseStatusInProgress
	default:
		return entities.CourseStatusNotStarted
	}
}

func ratings(s *entities.Snapshot, courseID string) []float64 {
	var values []float64
	for _, c := range s.Comments {
		if c.CourseID == courseID && c.Rating != nil {
			values = append(values, *c.Rating)
		}
	}
	return values
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
