package assignment

import (
	"context"
	"fmt"

	assignmenterrors "resto-admin/internal/assignment/errors"
	"resto-admin/internal/audit"
	"resto-admin/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Current(ctx context.Context, kind Kind, ownerID int64) (View, error)
	Preview(ctx context.Context, kind Kind, ownerID int64, req PreviewRequest) (View, error)
	Commit(ctx context.Context, kind Kind, ownerID int64, assigned []int64) (View, error)
}

type service struct {
	sources map[Kind]Source
	audit   audit.Recorder
	logger  *zap.Logger
}

func NewService(sources map[Kind]Source, recorder audit.Recorder) Service {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &service{
		sources: sources,
		audit:   recorder,
		logger:  zap.L().Named("assignment.service"),
	}
}

func (s *service) source(kind Kind) (Source, error) {
	src, ok := s.sources[kind]
	if !ok {
		return nil, assignmenterrors.ErrUnknownKind.WithErr(fmt.Errorf("kind %q", kind))
	}
	return src, nil
}

// load fetches the universe and the persisted assignment concurrently.
func (s *service) load(ctx context.Context, src Source, ownerID int64) ([]*Item, []int64, error) {
	if ownerID <= 0 {
		return nil, nil, assignmenterrors.ErrInvalidOwnerID
	}

	var (
		universe []*Item
		current  []int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		universe, err = src.Universe(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		current, err = src.Current(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return universe, current, nil
}

func view(kind Kind, ownerID int64, d *Differ, persisted []int64) View {
	v := View{
		Kind:           kind,
		OwnerID:        ownerID,
		Assigned:       d.Assigned(),
		Unassigned:     d.Unassigned(),
		AssignedTree:   d.AssignedTree(),
		UnassignedTree: d.UnassignedTree(),
	}
	v.Added, v.Removed = Diff(persisted, v.Assigned)
	return v
}

func (s *service) Current(ctx context.Context, kind Kind, ownerID int64) (View, error) {
	src, err := s.source(kind)
	if err != nil {
		return View{}, err
	}
	universe, current, err := s.load(ctx, src, ownerID)
	if err != nil {
		return View{}, err
	}

	d := NewDiffer(universe, current, nil)
	return view(kind, ownerID, d, d.Assigned()), nil
}

func (s *service) Preview(ctx context.Context, kind Kind, ownerID int64, req PreviewRequest) (View, error) {
	src, err := s.source(kind)
	if err != nil {
		return View{}, err
	}
	universe, current, err := s.load(ctx, src, ownerID)
	if err != nil {
		return View{}, err
	}

	persisted := NewDiffer(universe, current, nil).Assigned()
	working := current
	if req.Assigned != nil {
		working = req.Assigned
	}

	d := NewDiffer(universe, working, nil)
	if req.Command != nil {
		if err := d.Apply(*req.Command); err != nil {
			return View{}, err
		}
	}

	v := view(kind, ownerID, d, persisted)
	if req.Term != "" {
		v.AssignedTree, v.UnassignedTree = d.Search(req.Term)
	}
	return v, nil
}

// Commit replaces the owner's assignment with assigned. Every ID must belong to the universe.
func (s *service) Commit(ctx context.Context, kind Kind, ownerID int64, assigned []int64) (View, error) {
	src, err := s.source(kind)
	if err != nil {
		return View{}, err
	}
	universe, current, err := s.load(ctx, src, ownerID)
	if err != nil {
		return View{}, err
	}

	var next []int64
	d := NewDiffer(universe, current, func(ids []int64) { next = ids })
	if unknown := d.Unknown(assigned); len(unknown) > 0 {
		return View{}, assignmenterrors.ErrUnknownItem.WithErr(fmt.Errorf("ids %v", unknown))
	}
	persisted := d.Assigned()
	d.UnassignAll()
	d.AssignSelected(assigned)

	added, removed := Diff(persisted, next)
	if len(added) == 0 && len(removed) == 0 {
		return view(kind, ownerID, d, d.Assigned()), nil
	}

	if err := src.Save(ctx, ownerID, persisted, next); err != nil {
		return View{}, err
	}

	if err := s.audit.Record(ctx, audit.Entry{
		Action:     "assignment." + string(kind),
		Resource:   src.OwnerResource(),
		ResourceID: audit.ID(ownerID),
		Payload: map[string]any{
			"kind":    kind,
			"added":   added,
			"removed": removed,
		},
	}); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("audit record failed", zap.String("kind", string(kind)), zap.Error(err))
	}

	return view(kind, ownerID, d, next), nil
}
