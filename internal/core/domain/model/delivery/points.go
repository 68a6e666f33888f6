package delivery

import "time"

const (
	basePoints      = 10
	onTimeBonus     = 10
	issuePenalty    = 2
	defaultEstimate = time.Hour
)

// PointsInput carries everything CalculatePoints looks at.
type PointsInput struct {
	Priority            Priority
	ConditionAtDelivery FoodCondition
	AssignedAt          time.Time
	EstimatedCompletion *time.Time
	ActualCompletion    time.Time
	IssueCount          int
}

// CalculatePoints scores a completed delivery for the NGO:
//
//	10 base
//	+ 15 urgent / 10 high / 5 medium / 0 low
//	+ 10 excellent / 5 good at delivery
//	+ 10 if completed no later than the estimate (assignedAt + 1h when unset)
//	- 2 per reported issue
//
// The result never drops below zero.
func CalculatePoints(in PointsInput) int {
	points := basePoints + in.Priority.bonus() + in.ConditionAtDelivery.bonus()

	estimated := in.AssignedAt.Add(defaultEstimate)
	if in.EstimatedCompletion != nil {
		estimated = *in.EstimatedCompletion
	}
	if !in.ActualCompletion.After(estimated) {
		points += onTimeBonus
	}

	points -= issuePenalty * in.IssueCount
	return max(points, 0)
}
