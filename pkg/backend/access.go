package backend

import (
	"context"
	"errors"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var accessResolutionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "craftplan",
	Subsystem: "access",
	Name:      "resolutions_total",
	Help:      "The total number of access resolutions by source",
}, []string{"source", "level"})

// Resolution is the result of resolving a user's access on a project.
type Resolution struct {
	// Level is the resolved access level.
	Level access.Level
	// Source is the grant path that produced the level.
	Source access.Source
}

// Resolve returns the access a user has on a project and the grant path it
// came from. Grant paths are checked in strict priority order: membership
// in the owning organization wins outright, then accepted organization
// shares, then per-contact grants. Within a path the highest grant wins.
// Storage errors resolve to no access.
func (b *Backend) Resolve(ctx context.Context, user proto.User, projectID int64) Resolution {
	none := Resolution{Level: access.NoAccess, Source: access.SourceNone}
	if user == nil {
		return none
	}

	if r, ok := b.cache.Get(user.ID(), projectID); ok {
		return r
	}

	r := b.resolve(ctx, user, projectID)
	b.cache.Set(user.ID(), projectID, r)
	accessResolutionCounter.WithLabelValues(r.Source.String(), r.Level.String()).Inc()

	return r
}

func (b *Backend) resolve(ctx context.Context, user proto.User, projectID int64) Resolution {
	none := Resolution{Level: access.NoAccess, Source: access.SourceNone}

	project, err := b.store.GetProjectByID(ctx, b.db, projectID)
	if err != nil {
		if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			b.logger.Error("failed to get project", "project", projectID, "err", err)
		}
		return none
	}

	// Membership in the owning organization takes precedence over every
	// other grant path, even when a share or contact grant would give a
	// higher level.
	member, err := b.store.GetOrgMember(ctx, b.db, project.OrgID, user.ID())
	if err == nil {
		return Resolution{Level: member.Role.AccessLevel(), Source: access.SourceOwnership}
	} else if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
		b.logger.Error("failed to get org member", "org", project.OrgID, "user", user.ID(), "err", err)
		return none
	}

	// The user may belong to several organizations the project is shared
	// with. The highest accepted share wins.
	shares, err := b.store.ListAcceptedSharesForUser(ctx, b.db, projectID, user.ID())
	if err != nil {
		b.logger.Error("failed to list shares", "project", projectID, "user", user.ID(), "err", err)
		return none
	}

	level := access.NoAccess
	for _, s := range shares {
		if s.Level > level {
			level = s.Level
		}
	}
	if level > access.NoAccess {
		return Resolution{Level: level, Source: access.SourceShare}
	}

	// Contact grants are the weakest path. The highest grant held by any
	// contact linked to the user wins.
	grants, err := b.store.ListContactGrantsForUser(ctx, b.db, projectID, user.ID())
	if err != nil {
		b.logger.Error("failed to list contact grants", "project", projectID, "user", user.ID(), "err", err)
		return none
	}

	for _, g := range grants {
		if g.Level > level {
			level = g.Level
		}
	}
	if level > access.NoAccess {
		return Resolution{Level: level, Source: access.SourceContact}
	}

	return none
}

// AccessLevel returns the access level of a user for a project.
func (b *Backend) AccessLevel(ctx context.Context, user proto.User, projectID int64) access.Level {
	return b.Resolve(ctx, user, projectID).Level
}

// CanView reports whether the user can read the project.
func (b *Backend) CanView(ctx context.Context, user proto.User, projectID int64) bool {
	return b.AccessLevel(ctx, user, projectID).AtLeast(access.Viewer)
}

// CanEdit reports whether the user can edit project content such as costs
// and notes.
func (b *Backend) CanEdit(ctx context.Context, user proto.User, projectID int64) bool {
	return b.AccessLevel(ctx, user, projectID).AtLeast(access.Editor)
}

// CanManageStages reports whether the user can add, reorder, and remove
// stages on the project.
func (b *Backend) CanManageStages(ctx context.Context, user proto.User, projectID int64) bool {
	return b.AccessLevel(ctx, user, projectID).AtLeast(access.Admin)
}

// CanManageProject reports whether the user can change project settings and
// sharing.
func (b *Backend) CanManageProject(ctx context.Context, user proto.User, projectID int64) bool {
	return b.AccessLevel(ctx, user, projectID).AtLeast(access.Admin)
}
