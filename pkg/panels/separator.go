package panels

import (
	"context"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// separatorPanel is static text, usually drawn between two other panels.
type separatorPanel struct {
	common
	format string
}

func newSeparator(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	format := cfg.Format
	if format == "" {
		format = " | "
	}
	return &separatorPanel{common: c, format: format}, nil
}

func (p *separatorPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	updates := make(chan bar.Update, 1)
	go func() {
		defer close(updates)
		emit(ctx, updates, bar.Update{Info: p.textInfo(h, p.format)})
	}()
	return updates, nil, nil
}
