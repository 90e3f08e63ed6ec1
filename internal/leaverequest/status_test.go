package leaverequest_test

import (
	"math/rand"
	"testing"

	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/leaverequest"
	leaverequesterrors "github.com/ZBee-Tech/e-Conges/internal/leaverequest/errors"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", leaverequest.StatusPending.Label())
	assert.Equal(t, "Approved", leaverequest.StatusApproved.Label())
	assert.Equal(t, "Rejected", leaverequest.StatusRejected.Label())
}

func TestStageForRole(t *testing.T) {
	stage, ok := leaverequest.StageForRole(domain.RoleHOD)
	assert.True(t, ok)
	assert.Equal(t, leaverequest.StageHOD, stage)

	stage, ok = leaverequest.StageForRole(domain.RoleHRManager)
	assert.True(t, ok)
	assert.Equal(t, leaverequest.StageHR, stage)

	stage, ok = leaverequest.StageForRole(domain.RoleCEO)
	assert.True(t, ok)
	assert.Equal(t, leaverequest.StageCEO, stage)

	_, ok = leaverequest.StageForRole(domain.RoleEmployee)
	assert.False(t, ok)

	_, ok = leaverequest.StageForRole(domain.RoleAdmin)
	assert.False(t, ok)
}

func TestNextStatus_FullApprovalChain(t *testing.T) {
	v := leaverequest.StatusVector{}

	v, err := leaverequest.NextStatus(v, leaverequest.StageHOD, leaverequest.DecisionApprove)
	assert.NoError(t, err)
	assert.Equal(t, leaverequest.StatusApproved, v.Hod)
	assert.Equal(t, leaverequest.StatusPending, v.Composite)

	v, err = leaverequest.NextStatus(v, leaverequest.StageHR, leaverequest.DecisionApprove)
	assert.NoError(t, err)
	assert.Equal(t, leaverequest.StatusApproved, v.Hr)
	assert.Equal(t, leaverequest.StatusPending, v.Composite)

	v, err = leaverequest.NextStatus(v, leaverequest.StageCEO, leaverequest.DecisionApprove)
	assert.NoError(t, err)
	assert.Equal(t, leaverequest.StatusVector{
		Hod:       leaverequest.StatusApproved,
		Hr:        leaverequest.StatusApproved,
		Ceo:       leaverequest.StatusApproved,
		Composite: leaverequest.StatusApproved,
	}, v)
}

func TestNextStatus_OutOfOrder(t *testing.T) {
	t.Run("hr before hod", func(t *testing.T) {
		v := leaverequest.StatusVector{}
		next, err := leaverequest.NextStatus(v, leaverequest.StageHR, leaverequest.DecisionApprove)
		assert.ErrorIs(t, err, leaverequesterrors.ErrOutOfOrderApproval)
		assert.Equal(t, v, next)
	})

	t.Run("ceo before hr", func(t *testing.T) {
		v := leaverequest.StatusVector{Hod: leaverequest.StatusApproved}
		next, err := leaverequest.NextStatus(v, leaverequest.StageCEO, leaverequest.DecisionApprove)
		assert.ErrorIs(t, err, leaverequesterrors.ErrOutOfOrderApproval)
		assert.Equal(t, v, next)
	})

	t.Run("stage already decided", func(t *testing.T) {
		v := leaverequest.StatusVector{Hod: leaverequest.StatusApproved}
		_, err := leaverequest.NextStatus(v, leaverequest.StageHOD, leaverequest.DecisionApprove)
		assert.ErrorIs(t, err, leaverequesterrors.ErrOutOfOrderApproval)

		_, err = leaverequest.NextStatus(v, leaverequest.StageHOD, leaverequest.DecisionReject)
		assert.ErrorIs(t, err, leaverequesterrors.ErrOutOfOrderApproval)
	})

	t.Run("no stage acts after a rejection", func(t *testing.T) {
		v := leaverequest.StatusVector{
			Hod:       leaverequest.StatusRejected,
			Composite: leaverequest.StatusRejected,
		}
		_, err := leaverequest.NextStatus(v, leaverequest.StageHR, leaverequest.DecisionApprove)
		assert.ErrorIs(t, err, leaverequesterrors.ErrOutOfOrderApproval)

		_, err = leaverequest.NextStatus(v, leaverequest.StageCEO, leaverequest.DecisionApprove)
		assert.ErrorIs(t, err, leaverequesterrors.ErrOutOfOrderApproval)
	})
}

func TestNextStatus_RejectShortCircuits(t *testing.T) {
	t.Run("hod reject", func(t *testing.T) {
		v, err := leaverequest.NextStatus(leaverequest.StatusVector{}, leaverequest.StageHOD, leaverequest.DecisionReject)
		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, v.Hod)
		assert.Equal(t, leaverequest.StatusRejected, v.Composite)
		// Downstream stages stay Pending so the record shows where the
		// chain stopped.
		assert.Equal(t, leaverequest.StatusPending, v.Hr)
		assert.Equal(t, leaverequest.StatusPending, v.Ceo)
	})

	t.Run("hr reject", func(t *testing.T) {
		start := leaverequest.StatusVector{Hod: leaverequest.StatusApproved}
		v, err := leaverequest.NextStatus(start, leaverequest.StageHR, leaverequest.DecisionReject)
		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, v.Hod)
		assert.Equal(t, leaverequest.StatusRejected, v.Hr)
		assert.Equal(t, leaverequest.StatusPending, v.Ceo)
		assert.Equal(t, leaverequest.StatusRejected, v.Composite)
	})

	t.Run("ceo reject", func(t *testing.T) {
		start := leaverequest.StatusVector{
			Hod: leaverequest.StatusApproved,
			Hr:  leaverequest.StatusApproved,
		}
		v, err := leaverequest.NextStatus(start, leaverequest.StageCEO, leaverequest.DecisionReject)
		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, v.Ceo)
		assert.Equal(t, leaverequest.StatusRejected, v.Composite)
	})
}

func TestNextStatus_InvalidInputs(t *testing.T) {
	_, err := leaverequest.NextStatus(leaverequest.StatusVector{}, leaverequest.Stage("MANAGER"), leaverequest.DecisionApprove)
	assert.ErrorIs(t, err, leaverequesterrors.ErrUnknownStage)

	_, err = leaverequest.NextStatus(leaverequest.StatusVector{}, leaverequest.StageHOD, leaverequest.Decision("MAYBE"))
	assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDecision)
}

// TestNextStatus_RandomSequences hammers the transition function with
// arbitrary decision sequences and checks the structural invariants on
// every reachable vector: decided fields never change again, approval
// order is HOD then HR then CEO, and the composite is Approved only when
// all three stages approved and Rejected exactly when some stage
// rejected.
func TestNextStatus_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	stages := []leaverequest.Stage{leaverequest.StageHOD, leaverequest.StageHR, leaverequest.StageCEO}
	decisions := []leaverequest.Decision{leaverequest.DecisionApprove, leaverequest.DecisionReject}

	for run := 0; run < 500; run++ {
		v := leaverequest.StatusVector{}

		for step := 0; step < 10; step++ {
			stage := stages[rng.Intn(len(stages))]
			decision := decisions[rng.Intn(len(decisions))]

			next, err := leaverequest.NextStatus(v, stage, decision)
			if err != nil {
				assert.ErrorIs(t, err, leaverequesterrors.ErrOutOfOrderApproval)
				assert.Equal(t, v, next)
				continue
			}

			// Decided fields are immutable.
			if v.Hod != leaverequest.StatusPending {
				assert.Equal(t, v.Hod, next.Hod)
			}
			if v.Hr != leaverequest.StatusPending {
				assert.Equal(t, v.Hr, next.Hr)
			}
			if v.Ceo != leaverequest.StatusPending {
				assert.Equal(t, v.Ceo, next.Ceo)
			}

			// Sequential order: a decided HR implies an approved HOD,
			// a decided CEO implies an approved HR.
			if next.Hr != leaverequest.StatusPending {
				assert.Equal(t, leaverequest.StatusApproved, next.Hod)
			}
			if next.Ceo != leaverequest.StatusPending {
				assert.Equal(t, leaverequest.StatusApproved, next.Hr)
			}

			// Composite consistency.
			anyRejected := next.Hod == leaverequest.StatusRejected ||
				next.Hr == leaverequest.StatusRejected ||
				next.Ceo == leaverequest.StatusRejected
			allApproved := next.Hod == leaverequest.StatusApproved &&
				next.Hr == leaverequest.StatusApproved &&
				next.Ceo == leaverequest.StatusApproved

			switch next.Composite {
			case leaverequest.StatusApproved:
				assert.True(t, allApproved)
			case leaverequest.StatusRejected:
				assert.True(t, anyRejected)
			default:
				assert.False(t, allApproved)
				assert.False(t, anyRejected)
			}

			v = next
		}
	}
}

// TestStatusVector_QueuePartitioning walks every vector reachable through
// legal decisions and checks that, as long as the composite is still
// Pending, the request sits in at least one stage queue and that queue's
// stage can actually decide it. The queue membership conditions mirror
// the repository's listing filters.
func TestStatusVector_QueuePartitioning(t *testing.T) {
	stages := []leaverequest.Stage{leaverequest.StageHOD, leaverequest.StageHR, leaverequest.StageCEO}
	decisions := []leaverequest.Decision{leaverequest.DecisionApprove, leaverequest.DecisionReject}

	reachable := map[leaverequest.StatusVector]bool{}
	var walk func(v leaverequest.StatusVector)
	walk = func(v leaverequest.StatusVector) {
		if reachable[v] {
			return
		}
		reachable[v] = true
		for _, stage := range stages {
			for _, decision := range decisions {
				if next, err := leaverequest.NextStatus(v, stage, decision); err == nil {
					walk(next)
				}
			}
		}
	}
	walk(leaverequest.StatusVector{})

	inQueue := map[leaverequest.Stage]func(leaverequest.StatusVector) bool{
		leaverequest.StageHOD: func(v leaverequest.StatusVector) bool {
			return v.Hod == leaverequest.StatusPending
		},
		leaverequest.StageHR: func(v leaverequest.StatusVector) bool {
			return v.Hr == leaverequest.StatusPending
		},
		leaverequest.StageCEO: func(v leaverequest.StatusVector) bool {
			return v.Ceo == leaverequest.StatusPending && v.Hr == leaverequest.StatusApproved
		},
	}

	for v := range reachable {
		if v.Composite != leaverequest.StatusPending {
			continue
		}

		actionable := 0
		for _, stage := range stages {
			if !inQueue[stage](v) {
				continue
			}
			if _, err := leaverequest.NextStatus(v, stage, leaverequest.DecisionApprove); err == nil {
				actionable++
			}
		}

		// Exactly one stage owns an undecided request at any time.
		assert.Equal(t, 1, actionable, "vector %+v", v)
	}
}
