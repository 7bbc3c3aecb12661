// Package appstate carries the service dependencies through the request
// context so handlers stay free of globals.
package appstate

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/infra/monitoring"
	"github.com/Keith9922/Ketcher-demo/engine/task"
	"github.com/Keith9922/Ketcher-demo/pkg/config"
)

type contextKey string

const stateKey contextKey = "app_state"

// BaseDeps are the dependencies every handler may reach for.
type BaseDeps struct {
	Config     *config.Config
	Store      *task.Store
	Normalizer *chem.Normalizer
	Monitoring *monitoring.Service
}

func NewBaseDeps(
	cfg *config.Config,
	store *task.Store,
	normalizer *chem.Normalizer,
	mon *monitoring.Service,
) BaseDeps {
	return BaseDeps{
		Config:     cfg,
		Store:      store,
		Normalizer: normalizer,
		Monitoring: mon,
	}
}

type State struct {
	BaseDeps
}

func NewState(deps BaseDeps) (*State, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("task store is required")
	}
	if deps.Normalizer == nil {
		return nil, fmt.Errorf("normalizer is required")
	}
	return &State{BaseDeps: deps}, nil
}

func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

func GetState(ctx context.Context) (*State, error) {
	state, ok := ctx.Value(stateKey).(*State)
	if !ok {
		return nil, fmt.Errorf("app state not found in context")
	}
	return state, nil
}

func StateMiddleware(state *State) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithState(c.Request.Context(), state)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
