package leaverequest

import (
	"github.com/ZBee-Tech/e-Conges/internal/domain"
	leaverequesterrors "github.com/ZBee-Tech/e-Conges/internal/leaverequest/errors"
)

// Status is the tri-state value of a single approval field.
type Status int

const (
	StatusPending  Status = 0
	StatusApproved Status = 1
	StatusRejected Status = -1
)

func (s Status) Label() string {
	switch s {
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "Pending"
	}
}

// Stage is one of the three sequential approval steps.
type Stage string

const (
	StageHOD Stage = "HOD"
	StageHR  Stage = "HR"
	StageCEO Stage = "CEO"
)

// StageForRole maps an approver role to its stage. Employees and Admins
// have no stage.
func StageForRole(role domain.Role) (Stage, bool) {
	switch role {
	case domain.RoleHOD:
		return StageHOD, true
	case domain.RoleHRManager:
		return StageHR, true
	case domain.RoleCEO:
		return StageCEO, true
	}
	return "", false
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// StatusVector is the four-field approval state of one request.
type StatusVector struct {
	Hod       Status
	Hr        Status
	Ceo       Status
	Composite Status
}

// ready reports whether the stage may act on the current vector. Each
// stage requires its own field still Pending and the previous stage
// Approved, which keeps the chain strictly sequential and makes every
// decided field immutable.
func (v StatusVector) ready(stage Stage) bool {
	switch stage {
	case StageHOD:
		return v.Hod == StatusPending
	case StageHR:
		return v.Hod == StatusApproved && v.Hr == StatusPending
	case StageCEO:
		return v.Hr == StatusApproved && v.Ceo == StatusPending
	}
	return false
}

// NextStatus computes the successor vector for one decision. It is the
// only legal mutation path for status fields. A precondition violation
// returns ErrOutOfOrderApproval and the vector unchanged; it is never a
// silent no-op.
func NextStatus(v StatusVector, stage Stage, decision Decision) (StatusVector, error) {
	switch stage {
	case StageHOD, StageHR, StageCEO:
	default:
		return v, leaverequesterrors.ErrUnknownStage
	}

	if decision != DecisionApprove && decision != DecisionReject {
		return v, leaverequesterrors.ErrInvalidDecision
	}

	if !v.ready(stage) {
		return v, leaverequesterrors.ErrOutOfOrderApproval
	}

	next := v

	if decision == DecisionReject {
		// Short-circuit: downstream fields stay Pending so the record
		// shows where the chain stopped.
		switch stage {
		case StageHOD:
			next.Hod = StatusRejected
		case StageHR:
			next.Hr = StatusRejected
		case StageCEO:
			next.Ceo = StatusRejected
		}
		next.Composite = StatusRejected
		return next, nil
	}

	switch stage {
	case StageHOD:
		next.Hod = StatusApproved
	case StageHR:
		next.Hr = StatusApproved
	case StageCEO:
		next.Ceo = StatusApproved
		// All three stages approved once the CEO signs off.
		next.Composite = StatusApproved
	}

	return next, nil
}
