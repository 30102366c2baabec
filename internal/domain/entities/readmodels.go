package entities

import "encoding/json"

// RankedCourse is a course annotated with its mean rating.
// It encodes as the course object plus a "mediaNota" key.
type RankedCourse struct {
	Course
	AverageRating float64
}

func (r RankedCourse) MarshalJSON() ([]byte, error) {
	rating, err := json.Marshal(r.AverageRating)
	if err != nil {
		return nil, err
	}
	extra := make(Fields, len(r.Course.Extra)+1)
	for k, v := range r.Course.Extra {
		extra[k] = v
	}
	extra["mediaNota"] = rating

	type plain Course
	return MergeJSON(plain(r.Course), extra)
}

// DatasetStats counts the records of each collection.
type DatasetStats struct {
	Users        int `json:"usuarios"`
	Courses      int `json:"cursos"`
	Comments     int `json:"comentarios"`
	Certificates int `json:"certificados"`
}
