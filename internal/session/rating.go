package session

// MinRating and MaxRating bound a star rating.
const (
	MinRating = 1
	MaxRating = 5
)

var ratingLabels = [...]string{
	"Select a rating",
	"Very poor",
	"Poor",
	"Fair",
	"Good",
	"Excellent",
}

// RatingLabel describes a star count. Out-of-range values get the prompt text.
func RatingLabel(stars int) string {
	if stars < MinRating || stars > MaxRating {
		return ratingLabels[0]
	}
	return ratingLabels[stars]
}
