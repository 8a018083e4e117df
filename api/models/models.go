// Package models tracks all api models for request and responses
package models

import (
	"github.com/aouyang1/errorparty/celebrate"
	"github.com/aouyang1/errorparty/panel"
)

type StateResponse struct {
	Celebration celebrate.Snapshot `json:"celebration"`
	PanelOpen   bool               `json:"panel_open"`
	Frame       panel.Frame        `json:"frame"`
	Errors      int                `json:"errors"`
}

type PanelStateResponse struct {
	Open bool `json:"open"`
}

type PoolResponse struct {
	Category string   `json:"category"`
	Assets   []string `json:"assets"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
