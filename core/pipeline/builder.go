package pipeline

import (
	"net/http"

	"github.com/dmitrymomot/webdemo/core/handler"
	"github.com/dmitrymomot/webdemo/core/response"
)

// Builder assembles a pipeline step by step. Stages run in the order they
// were added. A builder is not safe for concurrent use and is meant to be
// configured once at startup.
type Builder[C handler.Context] struct {
	stages   []handler.Middleware[C]
	terminal handler.HandlerFunc[C]
}

// NewBuilder creates an empty builder.
func NewBuilder[C handler.Context]() *Builder[C] {
	return &Builder[C]{}
}

// Use appends stages to the pipeline.
func (b *Builder[C]) Use(stages ...handler.Middleware[C]) *Builder[C] {
	for _, s := range stages {
		if s == nil {
			panic(ErrNilStage)
		}
		b.stages = append(b.stages, s)
	}
	return b
}

// UseWhen adds a conditional branch. The branch stages run only when pred
// holds, then control rejoins this pipeline.
func (b *Builder[C]) UseWhen(pred func(ctx C) bool, configure func(branch *Builder[C])) *Builder[C] {
	branch := NewBuilder[C]()
	configure(branch)
	if branch.terminal != nil {
		panic(ErrTerminalInBranch)
	}
	return b.Use(When(pred, branch.stages...))
}

// Map adds an isolated branch for requests under prefix.
func (b *Builder[C]) Map(prefix string, configure func(branch *Builder[C])) *Builder[C] {
	branch := NewBuilder[C]()
	configure(branch)
	return b.Use(Map(prefix, branch.Build()))
}

// Run sets the terminal handler.
func (b *Builder[C]) Run(terminal handler.HandlerFunc[C]) *Builder[C] {
	if terminal == nil {
		panic(ErrNilTerminal)
	}
	if b.terminal != nil {
		panic(ErrTerminalAlreadySet)
	}
	b.terminal = terminal
	return b
}

// Build composes the stages around the terminal handler. Without a terminal
// the pipeline ends in an empty 404 response.
func (b *Builder[C]) Build() handler.HandlerFunc[C] {
	terminal := b.terminal
	if terminal == nil {
		terminal = func(C) handler.Response {
			return response.Status(http.StatusNotFound)
		}
	}

	stages := make([]handler.Middleware[C], len(b.stages))
	copy(stages, b.stages)

	return Compose(stages, terminal)
}
