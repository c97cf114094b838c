// Package guard gates navigation into protected views. The decision is a
// pure function of session state and must be re-evaluated on every render:
// identity can flip under a mounted view via login or logout.
package guard

import (
	"go-recruitart-client/internal/models"
	"go-recruitart-client/internal/session"
)

// LoginPath is where unauthenticated navigations are redirected. The
// originally requested path is discarded, there is no deep-link return.
const LoginPath = "/login"

type Decision int

const (
	// ShowLoading: session still resolving, render a neutral placeholder.
	ShowLoading Decision = iota
	// RedirectLogin: resolved and unauthenticated.
	RedirectLogin
	// RenderView: resolved and authenticated, show the requested view.
	RenderView
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect:" + LoginPath
	case RenderView:
		return "render"
	}
	return "unknown"
}

// Decide maps session state to a rendering decision.
func Decide(state session.ResolutionState, identity *models.Identity) Decision {
	if state == session.Resolving {
		return ShowLoading
	}
	if identity == nil {
		return RedirectLogin
	}
	return RenderView
}

// ForSession reads the manager's current state and decides.
func ForSession(m *session.Manager) Decision {
	return Decide(m.State(), m.Identity())
}
