package request

import (
	"fmt"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
)

// AcceptanceKind tags which side of the marketplace accepted a request.
type AcceptanceKind int

const (
	Unaccepted AcceptanceKind = iota
	ByDonor
	ByNGO
)

var acceptanceKindNames = map[AcceptanceKind]string{
	Unaccepted: "none",
	ByDonor:    "donor",
	ByNGO:      "ngo",
}

func (k AcceptanceKind) String() string {
	if name, ok := acceptanceKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Acceptance records at most one acceptor. The zero value is Unaccepted.
type Acceptance struct {
	kind       AcceptanceKind
	acceptorID kernel.UUID
}

func NoAcceptance() Acceptance {
	return Acceptance{kind: Unaccepted}
}

func AcceptedByDonorID(donorID kernel.UUID) Acceptance {
	return Acceptance{kind: ByDonor, acceptorID: donorID}
}

func AcceptedByNGOID(ngoID kernel.UUID) Acceptance {
	return Acceptance{kind: ByNGO, acceptorID: ngoID}
}

// RestoreAcceptance rebuilds an Acceptance from its stored kind name and
// acceptor id. The id must be present exactly when kind is not "none".
func RestoreAcceptance(kind string, acceptorID *kernel.UUID) (Acceptance, error) {
	switch kind {
	case "", acceptanceKindNames[Unaccepted]:
		if acceptorID != nil {
			return Acceptance{}, errs.NewValueIsInvalidErrorWithCause("request.acceptance",
				fmt.Errorf("acceptor %s recorded without kind", acceptorID))
		}
		return NoAcceptance(), nil
	case acceptanceKindNames[ByDonor], acceptanceKindNames[ByNGO]:
		if acceptorID == nil {
			return Acceptance{}, errs.NewValueIsRequiredError("request.acceptance.acceptorId")
		}
		if kind == acceptanceKindNames[ByDonor] {
			return AcceptedByDonorID(*acceptorID), nil
		}
		return AcceptedByNGOID(*acceptorID), nil
	default:
		return Acceptance{}, errs.NewValueIsInvalidErrorWithCause("request.acceptance",
			fmt.Errorf("%q is not a valid acceptance kind", kind))
	}
}

func (a Acceptance) Kind() AcceptanceKind {
	return a.kind
}

// AcceptorID returns the acceptor and true, or false when unaccepted.
func (a Acceptance) AcceptorID() (kernel.UUID, bool) {
	if a.kind == Unaccepted {
		return kernel.UUID{}, false
	}
	return a.acceptorID, true
}

// AcceptorPtr is the nullable form used by storage.
func (a Acceptance) AcceptorPtr() *kernel.UUID {
	if id, ok := a.AcceptorID(); ok {
		return &id
	}
	return nil
}

func (a Acceptance) IsAccepted() bool {
	return a.kind != Unaccepted
}
