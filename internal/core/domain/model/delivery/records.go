package delivery

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Confirmation is the NGO's record of a pickup or drop-off handover.
type Confirmation struct {
	ConfirmedBy kernel.UUID
	ConfirmedAt time.Time
	Notes       string
	Photos      []string
}

// IssueType classifies a reported problem.
type IssueType string

const (
	IssueDelay        IssueType = "delay"
	IssueFoodQuality  IssueType = "food_quality"
	IssueWrongAddress IssueType = "wrong_address"
	IssueUnreachable  IssueType = "unreachable"
	IssueVehicle      IssueType = "vehicle"
	IssueOther        IssueType = "other"
)

var issueTypes = []IssueType{
	IssueDelay, IssueFoodQuality, IssueWrongAddress, IssueUnreachable, IssueVehicle, IssueOther,
}

func (t IssueType) Validate() error {
	if !slices.Contains(issueTypes, t) {
		return errs.NewValueIsInvalidErrorWithCause("issue.type",
			fmt.Errorf("%q is not a valid issue type", string(t)))
	}
	return nil
}

// Issue is one entry of the append-only problem log.
type Issue struct {
	ID          kernel.UUID
	Type        IssueType
	Description string
	ReportedBy  kernel.UUID
	ReportedAt  time.Time
}

func newIssue(reportedBy kernel.UUID, issueType IssueType, description string, now time.Time) (Issue, error) {
	description = strings.TrimSpace(description)
	if err := issueType.Validate(); err != nil {
		return Issue{}, err
	}
	if description == "" {
		return Issue{}, errs.NewValueIsRequiredError("issue.description")
	}
	return Issue{
		ID:          kernel.NewUUID(),
		Type:        issueType,
		Description: description,
		ReportedBy:  reportedBy,
		ReportedAt:  now,
	}, nil
}

// Rating is feedback left on a completed delivery. DonorRating is zero for
// ratings written by the donor.
type Rating struct {
	DonorRating int
	NGORating   int
	Feedback    string
	RatedAt     time.Time
}

func validateStars(param string, stars int) error {
	if stars < MinRating || stars > MaxRating {
		return errs.NewValueIsOutOfRangeError(param, stars, MinRating, MaxRating)
	}
	return nil
}

// Parties are the five entities a delivery binds together.
type Parties struct {
	NGOID       kernel.UUID
	DonorID     kernel.UUID
	RequesterID kernel.UUID
	DonationID  kernel.UUID
	RequestID   kernel.UUID
}

func (p Parties) Validate() error {
	for _, id := range []kernel.UUID{p.NGOID, p.DonorID, p.RequesterID, p.DonationID, p.RequestID} {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Involves reports whether userID is the NGO, donor or requester of the delivery.
func (p Parties) Involves(userID kernel.UUID) bool {
	return p.NGOID.IsEqual(userID) || p.DonorID.IsEqual(userID) || p.RequesterID.IsEqual(userID)
}
