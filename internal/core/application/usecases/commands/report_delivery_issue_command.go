package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrReportDeliveryIssueCommandIsNotConstructed = errors.New(
	"ReportDeliveryIssueCommand must be created via NewReportDeliveryIssueCommand constructor",
)

type ReportDeliveryIssueCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	actorID     kernel.UUID
	issueType   delivery.IssueType
	description string

	guard guard.ConstructorGuard
}

func NewReportDeliveryIssueCommand(
	deliveryID, actorID kernel.UUID, issueType delivery.IssueType, description string,
) (ReportDeliveryIssueCommand, error) {
	if err := errors.Join(deliveryID.Validate(), actorID.Validate(), issueType.Validate()); err != nil {
		return ReportDeliveryIssueCommand{}, err
	}
	return ReportDeliveryIssueCommand{
		deliveryID:  deliveryID,
		actorID:     actorID,
		issueType:   issueType,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReportDeliveryIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportDeliveryIssueCommandIsNotConstructed)
}

func (c ReportDeliveryIssueCommand) DeliveryID() kernel.UUID       { return c.deliveryID }
func (c ReportDeliveryIssueCommand) ActorID() kernel.UUID          { return c.actorID }
func (c ReportDeliveryIssueCommand) IssueType() delivery.IssueType { return c.issueType }
func (c ReportDeliveryIssueCommand) Description() string           { return c.description }
