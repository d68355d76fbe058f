// Package token turns tokens back into completed recordings.
//
// Three forms are understood:
//
//	lm:<item>:<item>...   produced by memory.Linear (see memory.FormatItem)
//	gm::<document>        produced by memory.Graph
//	v1:v2:...             plain colon-delimited values; keys are "0", "1", ...
//	                      and every value goes through domain.Coerce
//
// A plain token whose first value is "lm" is still read as plain when its
// second value is not shaped like a linear item (it has no '/'), so "lm:5"
// yields ["lm", 5]. Plain tokens starting with "gm::" or with "lm:" followed
// by a value containing '/' cannot be expressed; use a tagged form instead.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/etchmory/pkg/document"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/memory"
	"github.com/aretw0/etchmory/pkg/ports"
)

// Parse rebuilds the recording a token was derived from. The returned
// recorder is complete, and its Token reproduces tagged input exactly.
func Parse(token string, opts ...memory.Option) (ports.Recorder, error) {
	switch {
	case strings.HasPrefix(token, memory.GraphTag+"::"):
		return parseGraph(strings.TrimPrefix(token, memory.GraphTag+"::"), opts)
	case strings.HasPrefix(token, memory.LinearTag+":") && linearShaped(strings.TrimPrefix(token, memory.LinearTag+":")):
		return parseLinear(strings.TrimPrefix(token, memory.LinearTag+":"), opts)
	default:
		return parsePlain(token, opts)
	}
}

// Decisions parses token and returns its decisions in order.
func Decisions(token string) ([]domain.Decision, error) {
	rec, err := Parse(token)
	if err != nil {
		return nil, err
	}
	seq, err := rec.Replay()
	if err != nil {
		return nil, err
	}
	return ports.Collect(seq), nil
}

// linearShaped reports whether body starts with a "<key>/<type><value>" item.
// An empty body counts as linear so that "lm:" is rejected.
func linearShaped(body string) bool {
	first, _, _ := strings.Cut(body, ":")
	return body == "" || strings.Contains(first, "/")
}

func parseLinear(body string, opts []memory.Option) (ports.Recorder, error) {
	if body == "" {
		return nil, invalid("linear token has no decisions")
	}
	rec := memory.NewLinear(opts...)
	for _, item := range strings.Split(body, ":") {
		d, err := memory.ParseItem(item)
		if err != nil {
			return nil, err
		}
		if err := rec.Mark(d.Key, d.Value); err != nil {
			return nil, invalidFrom(err)
		}
	}
	if err := rec.Complete(); err != nil {
		return nil, err
	}
	return rec, nil
}

func parseGraph(body string, opts []memory.Option) (ports.Recorder, error) {
	chain, err := document.Decode([]byte(body))
	if err != nil {
		return nil, invalidFrom(err)
	}

	rec := memory.NewGraph(opts...)
	node := chain.Root()
	for !node.IsLeaf() {
		if len(node.Children()) != 1 {
			return nil, invalid("graph token must be a single chain")
		}
		node = node.Children()[0]
		d, _ := node.Value()
		if err := rec.Mark(d.Key, d.Value); err != nil {
			return nil, invalidFrom(err)
		}
	}
	if err := rec.Complete(); err != nil {
		return nil, invalidFrom(err)
	}
	return rec, nil
}

func parsePlain(body string, opts []memory.Option) (ports.Recorder, error) {
	if body == "" {
		return nil, invalid("empty token")
	}
	rec := memory.NewLinear(opts...)
	for i, raw := range strings.Split(body, ":") {
		if err := rec.Mark(strconv.Itoa(i), domain.Coerce(raw)); err != nil {
			return nil, invalidFrom(err)
		}
	}
	if err := rec.Complete(); err != nil {
		return nil, err
	}
	return rec, nil
}

func invalid(reason string) error {
	return domain.NewError(domain.KindInvalidToken, "", fmt.Sprintf("invalid token: %s", reason))
}

func invalidFrom(err error) error {
	var e *domain.Error
	if errors.As(err, &e) && e.Msg != "" {
		return invalid(e.Msg)
	}
	return invalid(err.Error())
}
