package services

import (
	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"
)

// RequesterRatingBonus is credited to a requester for rating a delivery.
const RequesterRatingBonus = 2

// PointsCredit adds Points to UserID.
type PointsCredit struct {
	UserID kernel.UUID
	Points int
}

// RatingAwards lists the credits a requester's rating produces: the donor
// gets the donor stars, the NGO gets the NGO stars and the requester gets
// RequesterRatingBonus.
func RatingAwards(parties delivery.Parties, rating delivery.Rating) []PointsCredit {
	return []PointsCredit{
		{UserID: parties.DonorID, Points: rating.DonorRating},
		{UserID: parties.NGOID, Points: rating.NGORating},
		{UserID: parties.RequesterID, Points: RequesterRatingBonus},
	}
}
