package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"dsforge/internal/domain"
)

// ErrResponse is the JSON error envelope
type ErrResponse struct {
	Err        error `json:"-"`
	StatusCode int   `json:"-"`

	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Render implements render.Renderer
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func errInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:        err,
		StatusCode: http.StatusBadRequest,
		Error:      "invalid request",
		Details:    err.Error(),
	}
}

func errNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:        err,
		StatusCode: http.StatusNotFound,
		Error:      "not found",
		Details:    err.Error(),
	}
}

func errConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:        err,
		StatusCode: http.StatusConflict,
		Error:      "conflict",
		Details:    err.Error(),
	}
}

func errInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
		Error:      "internal error",
		Details:    err.Error(),
	}
}

// errFor maps domain errors to HTTP error responses
func errFor(err error) render.Renderer {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(err)
	case errors.Is(err, domain.ErrOutputExists):
		return errConflict(err)
	case errors.Is(err, domain.ErrUnknownVariable),
		errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, domain.ErrMissingName),
		errors.Is(err, domain.ErrPathEscape):
		return errInvalidRequest(err)
	default:
		return errInternal(err)
	}
}

// TemplateResponse is the API view of a template pack
type TemplateResponse struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Version     string             `json:"version,omitempty"`
	Variables   []VariableResponse `json:"variables,omitempty"`
	Directories []string           `json:"directories,omitempty"`
	FileCount   int                `json:"file_count"`
}

// VariableResponse is the API view of a template variable
type VariableResponse struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Default string   `json:"default,omitempty"`
	Choices []string `json:"choices,omitempty"`
	Prompt  string   `json:"prompt,omitempty"`
}

func newTemplateResponse(t *domain.Template) *TemplateResponse {
	resp := &TemplateResponse{
		Name:        t.Name,
		Description: t.Description,
		Version:     t.Version,
		Directories: t.Directories,
		FileCount:   len(t.Files),
	}
	for _, v := range t.Variables {
		resp.Variables = append(resp.Variables, VariableResponse{
			Name:    v.Name,
			Kind:    string(v.Kind),
			Default: v.Default,
			Choices: v.Choices,
			Prompt:  v.Prompt,
		})
	}
	return resp
}
