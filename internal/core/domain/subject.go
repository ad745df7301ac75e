package domain

// Subject owns zero or more polls. Its id is chosen by the client.
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ValidSubjectID(id int64) bool {
	return id >= 0
}
