// Package pipeline drives a build: parse the given source inputs, then
// run the signature resolver over the resulting modules. Its sequential
// Processor loop is grounded in the teacher's internal/pipeline/pipeline.go;
// PipelineContext itself has no teacher counterpart (the retrieved pack
// never exposed that struct's definition) and is designed here from the
// shape internal/resolver and cmd/timuc actually need.
package pipeline

import (
	"github.com/erhanbaris/timu-sub002/internal/config"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/tir"
	"github.com/google/uuid"
)

// Processor is one stage of a build.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs a fixed sequence of Processors.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline that runs processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run feeds initialCtx through every processor in turn.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

// Input is one source file still to be parsed: its dotted module path
// segments and raw text.
type Input struct {
	Path []string
	Code string
}

// PipelineContext is the state threaded through a build. BuildID stamps the
// invocation so a driver emitting several batches (the test harness running
// multiple inputs in one process) can tell them apart in captured output.
type PipelineContext struct {
	Manifest *config.ProjectConfig
	Inputs   []Input

	Ctx     *tir.Context
	Modules []*tir.Module
	Diags   *diagnostics.List
	BuildID uuid.UUID
}

// NewPipelineContext creates an empty context ready for LoadProcessor.
func NewPipelineContext(inputs []Input, manifest *config.ProjectConfig) *PipelineContext {
	return &PipelineContext{
		Manifest: manifest,
		Inputs:   inputs,
		Ctx:      tir.NewContext(),
		Diags:    &diagnostics.List{},
		BuildID:  uuid.New(),
	}
}

// Errors returns every diagnostic accumulated so far.
func (c *PipelineContext) Errors() []*diagnostics.Diagnostic {
	return c.Diags.Items()
}
