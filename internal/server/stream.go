package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/blocks/pkg/anim"
	blockserrors "github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/observability"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

// Frame is one message of the animation stream.
type Frame struct {
	Frame  int     `json:"frame"`
	Time   float64 `json:"time"`
	Format string  `json:"format"`
	Body   string  `json:"body"`
}

var errStreamDone = errors.New("stream done")

// handleAnimate streams frames of an animated generator. Query parameters:
// speed overrides the generator's clock speed; format picks svg, css or
// html (default svg when available, else css).
func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	g, err := registry.New(kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	a, ok := g.(generator.Animator)
	if !ok {
		s.writeError(w, r, blockserrors.New(blockserrors.ErrCodeUnsupported, "%s is not animated", kind))
		return
	}
	a.SetAnimated(true)

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = registry.FormatCSS
		if registry.Supports(g, registry.FormatSVG) {
			format = registry.FormatSVG
		}
	}
	if format != registry.FormatCSS && format != registry.FormatSVG && format != registry.FormatHTML {
		s.writeError(w, r, blockserrors.New(blockserrors.ErrCodeInvalidFormat, "animation frames are css, svg or html, not %q", format))
		return
	}
	if !registry.Supports(g, format) {
		s.writeError(w, r, blockserrors.New(blockserrors.ErrCodeUnsupported, "%s does not produce %s output", kind, format))
		return
	}
	speed := a.AnimationSpeed()
	if v := q.Get("speed"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			s.writeError(w, r, blockserrors.New(blockserrors.ErrCodeInvalidInput, "invalid speed %q", v))
			return
		}
		speed = f
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.originPatterns})
	if err != nil {
		s.logger.Debug("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	// CloseRead discards client messages and cancels ctx when the client
	// goes away, which stops the frame loop.
	ctx := conn.CloseRead(r.Context())

	hooks := observability.Server()
	hooks.OnStreamStart(ctx, kind)
	frames, err := s.stream(ctx, conn, a, format, speed)
	hooks.OnStreamEnd(ctx, kind, frames, err)

	if err != nil {
		s.logger.Debug("animation stream ended", "kind", kind, "frames", frames, "error", err)
		conn.Close(websocket.StatusInternalError, blockserrors.UserMessage(err))
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

// stream writes frames until ctx ends or the frame limit is reached.
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, a generator.Animator, format string, speed float64) (int, error) {
	clock := anim.NewClock(speed)
	n := 0
	err := anim.Loop(ctx, s.frameInterval, clock, func(t float64) error {
		body, err := pipeline.Render(ctx, a.Frame(t), format, nil)
		if err != nil {
			return err
		}
		if err := wsjson.Write(ctx, conn, Frame{Frame: n, Time: t, Format: format, Body: string(body)}); err != nil {
			return err
		}
		n++
		if s.maxFrames > 0 && n >= s.maxFrames {
			return errStreamDone
		}
		return nil
	})
	if errors.Is(err, errStreamDone) || ctx.Err() != nil {
		return n, nil
	}
	return n, err
}
