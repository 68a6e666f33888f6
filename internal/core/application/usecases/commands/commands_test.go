package commands_test

import (
	"testing"
	"time"

	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name string
		cmd  interface{ Validate() error }
		want error
	}{
		{"create request", commands.CreateRequestCommand{}, commands.ErrCreateRequestCommandIsNotConstructed},
		{"accept request", commands.AcceptRequestCommand{}, commands.ErrAcceptRequestCommandIsNotConstructed},
		{"extend request", commands.ExtendRequestCommand{}, commands.ErrExtendRequestCommandIsNotConstructed},
		{"cancel request", commands.CancelRequestCommand{}, commands.ErrCancelRequestCommandIsNotConstructed},
		{"delete request", commands.DeleteRequestCommand{}, commands.ErrDeleteRequestCommandIsNotConstructed},
		{"expire requests", commands.ExpireRequestsCommand{}, commands.ErrExpireRequestsCommandIsNotConstructed},
		{"create donation", commands.CreateDonationCommand{}, commands.ErrCreateDonationCommandIsNotConstructed},
		{"assign donation", commands.AssignDonationNGOCommand{}, commands.ErrAssignDonationNGOCommandIsNotConstructed},
		{"cancel donation", commands.CancelDonationCommand{}, commands.ErrCancelDonationCommandIsNotConstructed},
		{"delete donation", commands.DeleteDonationCommand{}, commands.ErrDeleteDonationCommandIsNotConstructed},
		{"create delivery", commands.CreateDeliveryCommand{}, commands.ErrCreateDeliveryCommandIsNotConstructed},
		{"start pickup", commands.StartPickupCommand{}, commands.ErrStartPickupCommandIsNotConstructed},
		{"handover", commands.HandoverCommand{}, commands.ErrHandoverCommandIsNotConstructed},
		{"confirm receipt", commands.ConfirmReceiptCommand{}, commands.ErrConfirmReceiptCommandIsNotConstructed},
		{"update location", commands.UpdateDeliveryLocationCommand{}, commands.ErrUpdateDeliveryLocationCommandIsNotConstructed},
		{"report issue", commands.ReportDeliveryIssueCommand{}, commands.ErrReportDeliveryIssueCommandIsNotConstructed},
		{"cancel delivery", commands.CancelDeliveryCommand{}, commands.ErrCancelDeliveryCommandIsNotConstructed},
		{"rate delivery", commands.RateDeliveryCommand{}, commands.ErrRateDeliveryCommandIsNotConstructed},
		{"register user", commands.RegisterUserCommand{}, commands.ErrRegisterUserCommandIsNotConstructed},
		{"admin user", commands.AdminUserCommand{}, commands.ErrAdminUserCommandIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cmd.Validate(), tt.want)
		})
	}
}

func TestNewAcceptRequestCommand_RejectsNilIDs(t *testing.T) {
	_, err := commands.NewAcceptRequestCommand(kernel.UUID{}, kernel.NewUUID(), nil)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	nilDonation := kernel.UUID{}
	_, err = commands.NewAcceptRequestCommand(kernel.NewUUID(), kernel.NewUUID(), &nilDonation)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewExtendRequestCommand_Minutes(t *testing.T) {
	cmd, err := commands.NewExtendRequestCommand(kernel.NewUUID(), kernel.NewUUID(), 0)
	require.NoError(t, err)
	assert.Equal(t, request.DefaultExtensionMinutes, cmd.Minutes())

	for _, minutes := range []int{-1, 31} {
		_, err = commands.NewExtendRequestCommand(kernel.NewUUID(), kernel.NewUUID(), minutes)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "minutes=%d", minutes)
	}
}

func TestNewCreateDonationCommand_RequiresExpiry(t *testing.T) {
	quantity, err := kernel.NewQuantity(1, "kg")
	require.NoError(t, err)
	loc, err := kernel.NewGeoLocation(0, 0, "")
	require.NoError(t, err)

	_, err = commands.NewCreateDonationCommand(
		kernel.NewUUID(), kernel.NewUUID(), donation.Details{Title: "x"}, quantity, time.Time{}, loc)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateDonationCommand(
		kernel.NewUUID(), kernel.NewUUID(), donation.Details{Title: "x"}, kernel.Quantity{}, time.Now(), loc)
	require.Error(t, err)
}

func TestNewHandoverCommand_CopiesPhotos(t *testing.T) {
	photos := []string{"a.jpg"}
	cmd, err := commands.NewHandoverCommand(kernel.NewUUID(), kernel.NewUUID(), delivery.Good, "ok", photos)
	require.NoError(t, err)

	photos[0] = "changed.jpg"
	assert.Equal(t, []string{"a.jpg"}, cmd.Photos())

	_, err = commands.NewHandoverCommand(kernel.NewUUID(), kernel.NewUUID(), delivery.ConditionUnknown, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewReportDeliveryIssueCommand_ValidatesType(t *testing.T) {
	_, err := commands.NewReportDeliveryIssueCommand(kernel.NewUUID(), kernel.NewUUID(), "flat_tyre", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
