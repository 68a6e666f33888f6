package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
)

// ReportDeliveryIssueCommandHandler appends to a delivery's issue log. Any
// bound party or an admin may report, in any status. Points already frozen
// at completion are not recomputed.
type ReportDeliveryIssueCommandHandler struct {
	deps Dependencies
}

func NewReportDeliveryIssueCommandHandler(deps Dependencies) ReportDeliveryIssueCommandHandler {
	return ReportDeliveryIssueCommandHandler{deps: deps}
}

func (h ReportDeliveryIssueCommandHandler) Handle(ctx context.Context, cmd ReportDeliveryIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.deps.Clock.Now()

	uow := h.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := loadActive(ctx, uow.UserRepository(), cmd.ActorID(), "report issue")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	issue, err := d.ReportIssue(actorOf(actor), cmd.IssueType(), cmd.Description(), now)
	if err != nil {
		return err
	}
	if err = deliveries.AppendIssue(ctx, d.ID(), issue); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"deliveryId":  d.ID().String(),
		"issueId":     issue.ID.String(),
		"type":        string(issue.Type),
		"description": issue.Description,
		"reportedBy":  actor.ID().String(),
	}
	parties := d.Parties()
	var notifications []ports.Notification
	for _, to := range []kernel.UUID{parties.NGOID, parties.DonorID, parties.RequesterID} {
		if !to.IsEqual(actor.ID()) {
			notifications = append(notifications, notification(ports.EventDeliveryIssueReported, to, payload))
		}
	}
	h.deps.notify(ctx, now, notifications...)
	return nil
}
