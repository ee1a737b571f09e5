// Package export renders both resume artifacts from one snapshot and hands
// them to a storage publisher.
package export

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careerforge/internal/rendering"
	"github.com/jonathan/careerforge/internal/storage"
	"github.com/jonathan/careerforge/internal/types"
)

// Content types of the two artifacts
const (
	ContentTypeLaTeX = "application/x-tex"
	ContentTypePDF   = "application/pdf"
)

// Recorder receives render timings, typically for metrics
type Recorder interface {
	ObserveRender(format string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRender(string, time.Duration, error) {}

// Artifact is one rendered file
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Bundle holds the LaTeX and PDF renderings of the same snapshot
type Bundle struct {
	LaTeX Artifact
	PDF   Artifact
	Pages int
}

// Artifacts returns the bundle files in publish order
func (b *Bundle) Artifacts() []Artifact {
	return []Artifact{b.LaTeX, b.PDF}
}

// Build renders doc into both formats concurrently. A nil recorder is allowed.
func Build(ctx context.Context, doc *types.ResumeDocument, rec Recorder) (*Bundle, error) {
	if doc == nil {
		return nil, &rendering.RenderError{Message: "resume document is nil"}
	}
	if rec == nil {
		rec = nopRecorder{}
	}

	name := doc.PersonalInfo.Name
	bundle := &Bundle{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		tex, err := rendering.RenderLaTeX(doc)
		rec.ObserveRender(rendering.ExtLaTeX, time.Since(start), err)
		if err != nil {
			return err
		}
		bundle.LaTeX = Artifact{
			Name:        rendering.ArtifactName(name, rendering.ExtLaTeX),
			ContentType: ContentTypeLaTeX,
			Data:        []byte(tex),
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		result, err := rendering.RenderPDF(doc)
		rec.ObserveRender(rendering.ExtPDF, time.Since(start), err)
		if err != nil {
			return err
		}
		bundle.PDF = Artifact{
			Name:        rendering.ArtifactName(name, rendering.ExtPDF),
			ContentType: ContentTypePDF,
			Data:        result.Data,
		}
		bundle.Pages = result.Pages
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Publish uploads every artifact of the bundle concurrently and returns the
// published objects in bundle order.
func Publish(ctx context.Context, pub storage.Publisher, bundle *Bundle) ([]*storage.Object, error) {
	if pub == nil {
		return nil, fmt.Errorf("no publisher configured")
	}

	artifacts := bundle.Artifacts()
	objects := make([]*storage.Object, len(artifacts))
	g, gctx := errgroup.WithContext(ctx)

	for i, a := range artifacts {
		g.Go(func() error {
			obj, err := pub.Publish(gctx, a.Name, a.Data, a.ContentType)
			if err != nil {
				return err
			}
			objects[i] = obj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return objects, nil
}
