package generator

import (
	"context"

	"github.com/akif5298/flowstate/core/model"
)

// Request carries everything the external generator needs to draft a day
// schedule. ExistingEvents are rendered strings ("H:MM - title"); SleepInfo is
// empty when no sleep data was available.
type Request struct {
	Predictions    []model.EnergyPrediction
	TaskNames      []string
	Tasks          []model.Task
	ExistingEvents []string
	SleepInfo      string
}

// ScheduleGenerator produces a free-text day schedule. The returned text is an
// untrusted, loosely structured document; callers must reconcile it against
// their own task catalog and constraints.
type ScheduleGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
