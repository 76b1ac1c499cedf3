package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
	"github.com/alexisbeaulieu97/sablier/internal/resolver"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

// themeHandler serves the theme API and the generated assets.
type themeHandler struct {
	resolver *resolver.Resolver
}

func newThemeHandler(r *resolver.Resolver) *themeHandler {
	return &themeHandler{resolver: r}
}

// Register registers the JSON theme operations with the Huma API.
func (h *themeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getTheme",
		Method:      http.MethodGet,
		Path:        "/api/v1/theme",
		Summary:     "Get the current theme",
		Description: "Returns the stored theme together with the resolved and system schemes",
		Tags:        []string{"Theme"},
	}, h.GetTheme)

	huma.Register(api, huma.Operation{
		OperationID: "replaceTheme",
		Method:      http.MethodPut,
		Path:        "/api/v1/theme",
		Summary:     "Replace the theme",
		Description: "Families missing from the body keep their current values",
		Tags:        []string{"Theme"},
	}, h.ReplaceTheme)

	huma.Register(api, huma.Operation{
		OperationID: "customizeTheme",
		Method:      http.MethodPatch,
		Path:        "/api/v1/theme",
		Summary:     "Customize the theme",
		Description: "Merges a partial theme into the current one",
		Tags:        []string{"Theme"},
	}, h.CustomizeTheme)

	huma.Register(api, huma.Operation{
		OperationID: "setColorScheme",
		Method:      http.MethodPut,
		Path:        "/api/v1/theme/scheme",
		Summary:     "Set the color scheme",
		Tags:        []string{"Theme"},
	}, h.SetColorScheme)

	huma.Register(api, huma.Operation{
		OperationID: "toggleTheme",
		Method:      http.MethodPost,
		Path:        "/api/v1/theme/toggle",
		Summary:     "Toggle between light and dark",
		Tags:        []string{"Theme"},
	}, h.Toggle)
}

// RegisterChiRoutes registers the stylesheet and bootstrap script. They need
// their own content types and conditional caching.
func (h *themeHandler) RegisterChiRoutes(r chi.Router) {
	r.Get("/theme.css", h.serveStylesheet)
	r.Get("/bootstrap.js", h.serveBootstrap)
}

// ThemeState is the JSON view of the resolver.
type ThemeState struct {
	Theme         theme.Theme `json:"theme"`
	ResolvedTheme string      `json:"resolvedTheme" enum:"light,dark" doc:"Scheme actually shown"`
	SystemTheme   string      `json:"systemTheme,omitempty" doc:"Host preference, absent until one is reported"`
	ColorScheme   string      `json:"colorScheme" enum:"light,dark" doc:"Stored scheme with system resolved"`
	Themes        []string    `json:"themes"`
	Forced        string      `json:"forced,omitempty" doc:"Pinned scheme, set by configuration"`
}

// ThemeOutput wraps every theme response.
type ThemeOutput struct {
	Body ThemeState
}

// GetThemeInput is the input for reading the theme.
type GetThemeInput struct{}

// ThemeBodyInput carries a JSON theme document, decoded by the theme package
// so missing families and tokens fall back instead of failing.
type ThemeBodyInput struct {
	RawBody []byte `contentType:"application/json"`
}

// SetColorSchemeInput is the input for changing the scheme.
type SetColorSchemeInput struct {
	Body struct {
		Scheme string `json:"scheme" enum:"light,dark,system" doc:"Scheme to store"`
	}
}

// ToggleInput is the input for toggling.
type ToggleInput struct{}

// GetTheme returns the current state.
func (h *themeHandler) GetTheme(ctx context.Context, input *GetThemeInput) (*ThemeOutput, error) {
	return h.state(ctx), nil
}

// ReplaceTheme stores a complete theme.
func (h *themeHandler) ReplaceTheme(ctx context.Context, input *ThemeBodyInput) (*ThemeOutput, error) {
	if err := h.checkForced(); err != nil {
		return nil, err
	}

	next, err := theme.Decode(input.RawBody, h.resolver.Theme())
	if err != nil {
		return nil, decodeError(err)
	}

	h.resolver.SetTheme(next)
	return h.state(ctx), nil
}

// CustomizeTheme merges a partial theme.
func (h *themeHandler) CustomizeTheme(ctx context.Context, input *ThemeBodyInput) (*ThemeOutput, error) {
	if err := h.checkForced(); err != nil {
		return nil, err
	}

	partial, err := theme.DecodePartial(input.RawBody)
	if err != nil {
		return nil, decodeError(err)
	}
	if err := theme.Validate(h.resolver.Theme().Merge(partial)); err != nil {
		return nil, decodeError(err)
	}

	h.resolver.CustomizeTheme(partial)
	return h.state(ctx), nil
}

// SetColorScheme stores a new scheme.
func (h *themeHandler) SetColorScheme(ctx context.Context, input *SetColorSchemeInput) (*ThemeOutput, error) {
	if err := h.checkForced(); err != nil {
		return nil, err
	}

	scheme, err := theme.ParseColorScheme(input.Body.Scheme)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid scheme", err)
	}

	h.resolver.SetColorScheme(scheme)
	return h.state(ctx), nil
}

// Toggle flips the resolved scheme.
func (h *themeHandler) Toggle(ctx context.Context, input *ToggleInput) (*ThemeOutput, error) {
	if err := h.checkForced(); err != nil {
		return nil, err
	}

	h.resolver.Toggle()
	return h.state(ctx), nil
}

// checkForced reports a pinned scheme to the client; the resolver itself
// ignores the change silently.
func (h *themeHandler) checkForced() error {
	if forced := h.resolver.Forced(); forced != "" {
		return huma.Error409Conflict("theme is forced to " + string(forced))
	}
	return nil
}

// state reports the resolver as the requesting client sees it: a stored
// system scheme follows the client's hint when it sent one.
func (h *themeHandler) state(ctx context.Context) *ThemeOutput {
	snap := h.resolver.Snapshot()
	system, known := snap.System, snap.SystemKnown
	scheme, resolved := snap.ColorScheme, snap.Resolved
	if hint, ok := ClientScheme(ctx); ok {
		system, known = hint, true
		scheme = theme.Resolve(snap.Theme.ColorScheme, hint)
		if snap.Forced == "" {
			resolved = scheme
		}
	}

	out := &ThemeOutput{Body: ThemeState{
		Theme:         snap.Theme,
		ResolvedTheme: string(resolved),
		ColorScheme:   string(scheme),
		Themes:        snap.Themes,
		Forced:        string(snap.Forced),
	}}
	if known {
		out.Body.SystemTheme = string(system)
	}
	return out
}

func decodeError(err error) error {
	var validationErr *sablierrors.ValidationError
	if errors.As(err, &validationErr) {
		return huma.Error422UnprocessableEntity("invalid theme", err)
	}
	return huma.Error400BadRequest("malformed theme document", err)
}

func (h *themeHandler) serveStylesheet(w http.ResponseWriter, r *http.Request) {
	css := cssvars.Stylesheet(h.resolver.Theme())
	serveAsset(w, r, "text/css; charset=utf-8", []byte(css))
}

func (h *themeHandler) serveBootstrap(w http.ResponseWriter, r *http.Request) {
	script := cssvars.BootstrapScript(h.resolver.StorageKey())
	serveAsset(w, r, "text/javascript; charset=utf-8", []byte(script))
}

// serveAsset writes body with a content-hash ETag. The theme changes at
// runtime, so clients always revalidate.
func serveAsset(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:12]) + `"`

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
