package handlers

import (
	"errors"
	"log"

	"floormapper-backend/internal/libraries"
	"floormapper-backend/internal/models"
	"floormapper-backend/internal/reconciler"

	"github.com/google/uuid"
)

// AnnotationProcessor feeds the websocket event stream into the reconciler.
// Create events only stage a draft; the record is committed later through the
// form endpoints.
type AnnotationProcessor struct {
	rec *reconciler.Reconciler
}

func NewAnnotationProcessor(rec *reconciler.Reconciler) *AnnotationProcessor {
	return &AnnotationProcessor{rec: rec}
}

func (p *AnnotationProcessor) ProcessCreateAnnotation(hub *libraries.Hub, client *libraries.Client, planID uuid.UUID, a reconciler.Annotation) {
	libraries.AnnotationEvents.WithLabelValues("create").Inc()
	p.rec.OnCreateAnnotation(planID, a)
}

func (p *AnnotationProcessor) ProcessUpdateAnnotation(hub *libraries.Hub, client *libraries.Client, planID uuid.UUID, a reconciler.Annotation) {
	libraries.AnnotationEvents.WithLabelValues("update").Inc()

	space, err := p.rec.OnUpdateAnnotation(planID, a)
	if err != nil {
		if errors.Is(err, models.ErrOrphanAnnotation) {
			log.Println(err, "Update for annotation without record", a.ID)
		}
		libraries.SendErrorMessage(hub, client, err.Error())
		return
	}

	// hand the current record back so the edit form can be pre-filled
	libraries.SendSpaceState(hub, client, planID, space)
}

func (p *AnnotationProcessor) ProcessDeleteAnnotation(hub *libraries.Hub, client *libraries.Client, planID uuid.UUID, a reconciler.Annotation) {
	libraries.AnnotationEvents.WithLabelValues("delete").Inc()
	p.rec.OnDeleteAnnotation(planID, a)
}
