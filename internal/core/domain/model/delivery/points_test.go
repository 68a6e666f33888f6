package delivery_test

import (
	"testing"
	"time"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePoints(t *testing.T) {
	assigned := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	estimate := assigned.Add(time.Hour)

	tests := []struct {
		name string
		in   delivery.PointsInput
		want int
	}{
		{
			name: "urgent excellent on time",
			in: delivery.PointsInput{
				Priority: delivery.Urgent, ConditionAtDelivery: delivery.Excellent,
				AssignedAt: assigned, EstimatedCompletion: &estimate,
				ActualCompletion: assigned.Add(30 * time.Minute),
			},
			want: 45,
		},
		{
			name: "one issue costs two points",
			in: delivery.PointsInput{
				Priority: delivery.Urgent, ConditionAtDelivery: delivery.Excellent,
				AssignedAt: assigned, EstimatedCompletion: &estimate,
				ActualCompletion: assigned.Add(30 * time.Minute), IssueCount: 1,
			},
			want: 43,
		},
		{
			name: "medium excellent on time",
			in: delivery.PointsInput{
				Priority: delivery.Medium, ConditionAtDelivery: delivery.Excellent,
				AssignedAt: assigned, ActualCompletion: assigned.Add(time.Hour),
			},
			want: 35,
		},
		{
			name: "high good late",
			in: delivery.PointsInput{
				Priority: delivery.High, ConditionAtDelivery: delivery.Good,
				AssignedAt: assigned, EstimatedCompletion: &estimate,
				ActualCompletion: estimate.Add(time.Second),
			},
			want: 25,
		},
		{
			name: "default estimate is assignedAt plus one hour",
			in: delivery.PointsInput{
				Priority: delivery.Low, ConditionAtDelivery: delivery.Poor,
				AssignedAt: assigned, ActualCompletion: assigned.Add(61 * time.Minute),
			},
			want: 10,
		},
		{
			name: "never negative",
			in: delivery.PointsInput{
				Priority: delivery.Low, ConditionAtDelivery: delivery.Fair,
				AssignedAt: assigned, ActualCompletion: assigned.Add(2 * time.Hour), IssueCount: 20,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, delivery.CalculatePoints(tt.in))
		})
	}
}

func TestPriorityFromUrgency(t *testing.T) {
	assert.Equal(t, delivery.Urgent, delivery.PriorityFromUrgency(request.Critical))
	assert.Equal(t, delivery.High, delivery.PriorityFromUrgency(request.High))
	assert.Equal(t, delivery.Medium, delivery.PriorityFromUrgency(request.Medium))
	assert.Equal(t, delivery.Medium, delivery.PriorityFromUrgency(request.Low))
}
