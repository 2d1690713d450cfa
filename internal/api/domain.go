package api

import (
	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/internal/assignments"
	"github.com/JaimeStill/groundtruth/internal/classifications"
	"github.com/JaimeStill/groundtruth/internal/results"
	"github.com/JaimeStill/groundtruth/internal/workitems"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Annotators      annotators.System
	Assignments     assignments.System
	Classifications classifications.System
	Results         results.System
	WorkItems       workitems.System
}

// NewDomain creates all domain systems over the runtime's connection.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.DB
	assignmentsSystem := assignments.New(db, runtime.Logger)

	return &Domain{
		Annotators:  annotators.New(db, runtime.Logger),
		Assignments: assignmentsSystem,
		Classifications: classifications.New(
			db,
			runtime.Logger,
			runtime.Pagination,
			runtime.DefaultAnnotator,
		),
		Results:   results.New(db, runtime.Logger),
		WorkItems: workitems.New(db, assignmentsSystem, runtime.Logger),
	}
}
