// Package api exposes the scheduling engine over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/report"
	"github.com/inference-sim/schedsim/sim/trace"
)

// Config holds the server-side defaults applied to every request.
type Config struct {
	Port      int
	Bundle    *sim.PolicyBundle
	MaxEvents int // timeline capacity per run (0 = unbounded)
}

// PolicyInfo describes one policy in the GET /policies listing.
type PolicyInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Default     string `json:"default"` // CLI form with the server's default parameters
}

// CompareResponse is the body returned by POST /compare.
type CompareResponse struct {
	Results []report.ResultRecord `json:"results"`
	Best    string                `json:"best"`
}

type SchedulerHandler interface {
	Policies(ctx *fiber.Ctx) error
	Schedule(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *Config
}

func NewSchedulerHandlerImpl(config *Config) *SchedulerHandlerImpl {
	if config.Bundle == nil {
		config.Bundle = sim.DefaultPolicyBundle()
	}
	return &SchedulerHandlerImpl{config: config}
}

// NewApp wires the handler into a fiber application under /api/v1.
func NewApp(h SchedulerHandler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Get("/policies", h.Policies)
		v1.Post("/schedule/:policy", h.Schedule)
		v1.Post("/compare", h.Compare)
	}
	return app
}

func badRequest(ctx *fiber.Ctx, err error) error {
	logrus.Debugf("api: %s %s: %v", ctx.Method(), ctx.Path(), err)
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func (s *SchedulerHandlerImpl) runOptions(traced bool) sim.RunOptions {
	opts := sim.RunOptions{MaxEvents: s.config.MaxEvents}
	if traced {
		opts.TraceLevel = trace.TraceLevelDecisions
	}
	return opts
}

func (s *SchedulerHandlerImpl) Policies(ctx *fiber.Ctx) error {
	names := []string{"fifo", "sjf", "stcf", "rr", "mlfq"}
	infos := make([]PolicyInfo, 0, len(names))
	for _, name := range names {
		spec := sim.PolicySpec{Name: name}
		switch name {
		case "rr":
			spec.Quantum = s.config.Bundle.ResolvedQuantum()
		case "mlfq":
			spec.MLFQ = s.config.Bundle.ResolvedMLFQ()
		}
		infos = append(infos, PolicyInfo{Name: name, DisplayName: spec.DisplayName(), Default: spec.String()})
	}
	return ctx.JSON(infos)
}

func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	request := new(ScheduleRequest)
	if err := ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	spec, err := request.policySpec(ctx.Params("policy"), s.config.Bundle)
	if err != nil {
		return badRequest(ctx, err)
	}
	procs, err := ToProcesses(request.Processes)
	if err != nil {
		return badRequest(ctx, err)
	}
	res, err := sim.Simulate(spec, procs, s.runOptions(request.Trace))
	if err != nil {
		return badRequest(ctx, err)
	}
	return ctx.JSON(report.NewResultRecord(res))
}

func (s *SchedulerHandlerImpl) Compare(ctx *fiber.Ctx) error {
	request := new(CompareRequest)
	if err := ctx.BodyParser(request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	specs, err := request.policySpecs(s.config.Bundle)
	if err != nil {
		return badRequest(ctx, err)
	}
	procs, err := ToProcesses(request.Processes)
	if err != nil {
		return badRequest(ctx, err)
	}
	results, err := sim.Compare(specs, procs, s.runOptions(false))
	if err != nil {
		return badRequest(ctx, err)
	}
	response := CompareResponse{Results: report.NewResultRecords(results)}
	if best := sim.Best(results); best != nil {
		response.Best = best.Algorithm
	}
	return ctx.JSON(response)
}
